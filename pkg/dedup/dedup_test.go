package dedup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/types"
)

func TestDedupeKeepsLongestVersion(t *testing.T) {
	d := New()

	full := "## التمرين 1\nنعتبر صندوقا يحتوي على كرات حمراء وبيضاء\nاحسب احتمال السحب"
	partial := "## التمرين 1\nنعتبر صندوقا يحتوي على كرات حمراء وبيضاء"

	got := d.Dedupe([]string{partial, full})
	require.Len(t, got, 1)
	assert.Equal(t, full, got[0])
}

func TestDedupeIgnoresSharedHeaders(t *testing.T) {
	d := New()

	header := "الامتحان الوطني الموحد\nالمادة الرياضيات\nالشعبة علوم\n\n"
	a := header + "## التمرين 1\nالاحتمالات وقوانين السحب المتتالي بدون إحلال"
	b := header + "## التمرين 2\nدراسة الدالة الأسية وتمثيلها المبياني الكامل"

	// Same header, disjoint sections: both must survive.
	got := d.Dedupe([]string{a, b})
	assert.Len(t, got, 2)
}

func TestDedupeTokenOverlap(t *testing.T) {
	d := New()

	a := "دراسة تغيرات الدالة العددية وحساب النهايات عند محدات التعريف مع التمثيل المبياني"
	// Same tokens, reordered and one dropped: above the 90% threshold.
	b := "وحساب النهايات عند محدات التعريف مع التمثيل المبياني دراسة تغيرات الدالة"

	got := d.Dedupe([]string{a, b})
	require.Len(t, got, 1)
	assert.Equal(t, a, got[0])
}

func TestDedupeKeepsDistinctTexts(t *testing.T) {
	d := New()

	texts := []string{
		"تمرين في الاحتمالات مع السحب بدون إحلال",
		"درس شامل حول المتتاليات العددية والترجع",
		"تصحيح امتحان الفيزياء الدورة العادية",
	}
	got := d.Dedupe(texts)
	assert.Len(t, got, 3)
}

func TestDedupeIdempotent(t *testing.T) {
	d := New()

	texts := []string{
		"## التمرين 1\nالاحتمالات وقوانين السحب",
		"## التمرين 1\nالاحتمالات وقوانين السحب المتتالي",
		"## التمرين 2\nدراسة الدالة",
	}
	once := d.Dedupe(texts)
	twice := d.Dedupe(once)
	assert.Equal(t, once, twice)
}

func TestDedupeOrderedByLength(t *testing.T) {
	d := New()

	short := "نص قصير عن الهندسة الفضائية"
	long := strings.Repeat("نص طويل عن الأعداد العقدية والتحويلات ", 3)

	got := d.Dedupe([]string{short, long})
	require.Len(t, got, 2)
	assert.Equal(t, long, got[0])
	assert.Equal(t, short, got[1])
}

func TestDedupeEmptyAndSingle(t *testing.T) {
	d := New()

	assert.Empty(t, d.Dedupe(nil))
	assert.Equal(t, []string{"x"}, d.Dedupe([]string{"x"}))
}

func TestDedupeCandidatesPreservesRankOrder(t *testing.T) {
	d := New()

	full := "## التمرين 1\nنعتبر صندوقا يحتوي على كرات حمراء وبيضاء\nاحسب احتمال السحب"
	partial := "## التمرين 1\nنعتبر صندوقا يحتوي على كرات حمراء وبيضاء"
	other := "## التمرين 2\nدراسة تغيرات الدالة الاسية"

	candidates := []types.Candidate{
		{ID: "other", Body: other},
		{ID: "partial", Body: partial},
		{ID: "full", Body: full},
	}

	got := d.DedupeCandidates(candidates)
	require.Len(t, got, 2)
	// partial is contained in full and dropped; survivors keep rank order.
	assert.Equal(t, "other", got[0].ID)
	assert.Equal(t, "full", got[1].ID)
}

func TestDedupeCandidatesDropsRepeatedIDs(t *testing.T) {
	d := New()

	candidates := []types.Candidate{
		{ID: "a", Body: "## التمرين 1\nالاحتمالات"},
		{ID: "a", Body: "## التمرين 1\nالاحتمالات"},
	}
	got := d.DedupeCandidates(candidates)
	require.Len(t, got, 1)
}
