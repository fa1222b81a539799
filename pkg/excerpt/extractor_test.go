package excerpt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const examPaper = `# الامتحان الوطني الموحد للبكالوريا
المادة: الرياضيات
الشعبة: علوم تجريبية
مدة الإنجاز: 3 ساعات

## التمرين 1
نعتبر صندوقا يحتوي على كرات.
### 1. أحسب الاحتمال
احسب احتمال سحب كرة حمراء.

## التمرين 2
نعتبر الدالة f المعرفة على R.

## حل التمرين 1
الاحتمال المطلوب هو 14/165

## حل التمرين 2
الدالة متصلة على مجال تعريفها.
`

const englishPaper = `# National Exam 2024
Subject: Mathematics

## Exercise 1
A box contains colored balls.

## Exercise 2
Consider the function f.

## Model Answer
The requested probability is 14/165
`

func TestExtractSkipsGenericQueries(t *testing.T) {
	e := New()

	for _, q := range []string{"الامتحان الوطني كامل", "give me everything", ""} {
		_, ok := e.Extract(examPaper, q)
		assert.False(t, ok, "query %q should skip extraction", q)
	}
}

func TestExtractQuestionExcludesSolution(t *testing.T) {
	e := New()

	got, ok := e.Extract(examPaper, "التمرين 1 الاحتمالات")
	require.True(t, ok)

	// Header block is preserved.
	assert.Contains(t, got, "الامتحان الوطني")
	assert.Contains(t, got, "مدة الإنجاز")

	// Question text and its sub-parts are captured.
	assert.Contains(t, got, "نعتبر صندوقا")
	assert.Contains(t, got, "احسب احتمال سحب")

	// The solution and the other exercise are excluded.
	assert.NotContains(t, got, "14/165")
	assert.NotContains(t, got, "الدالة f")
}

func TestExtractSolutionIncludesAnswer(t *testing.T) {
	e := New()

	got, ok := e.Extract(examPaper, "حل التمرين 1")
	require.True(t, ok)

	assert.Contains(t, got, "نعتبر صندوقا")
	assert.Contains(t, got, "14/165")
	assert.NotContains(t, got, "الدالة متصلة")
}

func TestExtractArabicOrdinal(t *testing.T) {
	e := New()

	got, ok := e.Extract(examPaper, "التمرين الثاني")
	require.True(t, ok)

	assert.Contains(t, got, "نعتبر الدالة f")
	assert.NotContains(t, got, "نعتبر صندوقا")
}

func TestExtractUnnumberedModelAnswer(t *testing.T) {
	e := New()

	// Question only: the adjacent model answer stays out.
	got, ok := e.Extract(englishPaper, "Exercise 1")
	require.True(t, ok)
	assert.Contains(t, got, "A box contains")
	assert.NotContains(t, got, "14/165")

	// Asking for the solution pulls the unnumbered model answer in.
	got, ok = e.Extract(englishPaper, "solution to Exercise 1")
	require.True(t, ok)
	assert.Contains(t, got, "14/165")
}

func TestExtractTopicKeyword(t *testing.T) {
	e := New()

	body := `# درس النهايات

## النهايات والاتصال
مفهوم النهاية عند نقطة.

## التمرين 1
تمرين تطبيقي.
`
	got, ok := e.Extract(body, "درس النهايات والاتصال")
	require.True(t, ok)
	assert.Contains(t, got, "مفهوم النهاية")
	assert.NotContains(t, got, "تمرين تطبيقي")
}

func TestExtractMissingNumberIsAMiss(t *testing.T) {
	e := New()

	_, ok := e.Extract(examPaper, "التمرين 7")
	assert.False(t, ok)
}
