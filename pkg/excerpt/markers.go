package excerpt

// Fixed marker vocabularies used to segment educational documents. All
// entries are in folded form (see pkg/normalizer.Fold) since matching runs
// on folded text.

// exerciseMarkers open an exercise/problem section.
var exerciseMarkers = []string{
	"تمرين", "التمرين", "مساله", "المساله", "سؤال", "السؤال",
	"exercise", "exercice", "problem", "probleme",
}

// solutionMarkers open a solution/answer section. They double as stop
// markers so a question capture never bleeds into its model answer.
var solutionMarkers = []string{
	"حل", "الحل", "تصحيح", "التصحيح", "جواب", "الجواب", "اجابه", "الاجابه",
	"solution", "correction", "corrige", "answer", "model answer",
}

// subjectMarkers open a new subject/topic block inside multi-subject exam
// papers.
var subjectMarkers = []string{
	"الموضوع", "موضوع", "الجزء", "جزء", "subject", "partie", "part",
}

// ordinalWords maps Arabic, English, and French ordinal words onto the
// exercise number they denote.
var ordinalWords = map[string]int{
	"الاول": 1, "اول": 1, "الثاني": 2, "ثاني": 2, "الثالث": 3, "ثالث": 3,
	"الرابع": 4, "رابع": 4, "الخامس": 5, "خامس": 5, "السادس": 6, "سادس": 6,
	"السابع": 7, "سابع": 7, "الثامن": 8, "ثامن": 8, "التاسع": 9, "تاسع": 9,
	"العاشر": 10, "عاشر": 10,
	"first": 1, "second": 2, "third": 3, "fourth": 4, "fifth": 5,
	"sixth": 6, "seventh": 7, "eighth": 8, "ninth": 9, "tenth": 10,
	"premier": 1, "premiere": 1, "deuxieme": 2, "troisieme": 3,
	"quatrieme": 4, "cinquieme": 5, "sixieme": 6,
}

// fillerTokens are ignored when collecting topic keywords from a query.
var fillerTokens = map[string]bool{
	"من": true, "في": true, "عن": true, "على": true, "مع": true,
	"رقم": true, "the": true, "of": true, "to": true, "for": true,
	"le": true, "la": true, "les": true, "de": true, "du": true,
}
