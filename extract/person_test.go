package extract_test

import (
	"testing"

	"github.com/fwojciec/prospect"
	"github.com/fwojciec/prospect/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonExtractor_Persons(t *testing.T) {
	t.Parallel()

	newPage := func(visible, summary string) *prospect.Page {
		return &prospect.Page{URL: "https://practice.co.uk", VisibleText: visible, Summary: summary}
	}

	e := extract.NewPersonExtractor()

	t.Run("title-first role before name", func(t *testing.T) {
		t.Parallel()

		persons := e.Persons(newPage("Principal Christopher Needham welcomes new patients.", ""))
		require.Len(t, persons, 1)
		assert.Equal(t, "Christopher Needham", persons[0].Name)
		assert.Equal(t, "Principal", persons[0].Title)
		assert.Equal(t, "Christopher", persons[0].FirstName)
		assert.Equal(t, "Needham", persons[0].LastName)
	})

	t.Run("title-first role after name", func(t *testing.T) {
		t.Parallel()

		persons := e.Persons(newPage("Emma Watson, Director of the clinic.", ""))
		require.Len(t, persons, 1)
		assert.Equal(t, "Emma Watson", persons[0].Name)
		assert.Equal(t, "Director", persons[0].Title)
	})

	t.Run("rejects organizational phrases posing as names", func(t *testing.T) {
		t.Parallel()

		persons := e.Persons(newPage("The clinic was founded by Chartered Management in 2004.", ""))
		assert.Empty(t, persons)
	})

	t.Run("qualification suffix becomes the role", func(t *testing.T) {
		t.Parallel()

		persons := e.Persons(newPage("Meet the dentists: Jane Smith BDS and her colleagues.", ""))
		require.Len(t, persons, 1)
		assert.Equal(t, "Jane Smith", persons[0].Name)
		assert.Equal(t, "BDS", persons[0].Title)
	})

	t.Run("narrative founder attribution", func(t *testing.T) {
		t.Parallel()

		persons := e.Persons(newPage("The practice was founded by Dr John Carter in 1998.", ""))
		require.Len(t, persons, 1)
		assert.Equal(t, "John Carter", persons[0].Name)
		assert.Equal(t, "Founder", persons[0].Title)
	})

	t.Run("proximity to a job phrase", func(t *testing.T) {
		t.Parallel()

		persons := e.Persons(newPage("Amanda Lynam Practice Manager and Zoe Tierney Receptionist", ""))
		require.Len(t, persons, 2)
		assert.Equal(t, "Amanda Lynam", persons[0].Name)
		assert.Equal(t, "Practice Manager", persons[0].Title)
		assert.Equal(t, "Zoe Tierney", persons[1].Name)
		assert.Equal(t, "Receptionist", persons[1].Title)
	})

	t.Run("open-ended trade noun", func(t *testing.T) {
		t.Parallel()

		persons := e.Persons(newPage("Mark Green Prosthetist joined us in 2019.", ""))
		require.Len(t, persons, 1)
		assert.Equal(t, "Mark Green", persons[0].Name)
		assert.Equal(t, "Prosthetist", persons[0].Title)
	})

	t.Run("regulatory register number proximity", func(t *testing.T) {
		t.Parallel()

		persons := e.Persons(newPage("Sarah Jones is registered with the GDC No. 123456", ""))
		require.Len(t, persons, 1)
		assert.Equal(t, "Sarah Jones", persons[0].Name)
		assert.Equal(t, "Professional", persons[0].Title)
	})

	t.Run("summary metadata wins the role over body strategies", func(t *testing.T) {
		t.Parallel()

		persons := e.Persons(newPage(
			"Jane Smith Hygienist looks after our patients.",
			"Dr Jane Smith and her team provide family dentistry.",
		))
		require.Len(t, persons, 1)
		assert.Equal(t, "Jane Smith", persons[0].Name)
		assert.Equal(t, "Dr", persons[0].Title)
	})

	t.Run("rejects sentence fragments", func(t *testing.T) {
		t.Parallel()

		persons := e.Persons(newPage("Our Practice Owner invites you. Welcome Team Receptionist desk.", ""))
		assert.Empty(t, persons)
	})

	t.Run("is deterministic over fixed input", func(t *testing.T) {
		t.Parallel()

		page := newPage("Principal Christopher Needham and Amanda Lynam Practice Manager", "")
		assert.Equal(t, e.Persons(page), e.Persons(page))
	})
}

func TestPersonExtractor_Dedupe(t *testing.T) {
	t.Parallel()

	lower := extract.Strategy{Name: "lower", Extract: func(*prospect.Page) []prospect.Person {
		return []prospect.Person{{Name: "Jane O'brien", Title: "Receptionist"}}
	}}
	upper := extract.Strategy{Name: "upper", Extract: func(*prospect.Page) []prospect.Person {
		return []prospect.Person{{Name: "Jane O'Brien", Title: "Practice Manager"}}
	}}

	e := extract.NewPersonExtractor(upper, lower)
	persons := e.Persons(&prospect.Page{})
	require.Len(t, persons, 1)
	assert.Equal(t, "Jane O'Brien", persons[0].Name)
	assert.Equal(t, "Practice Manager", persons[0].Title, "first strategy in precedence order wins the role")
}

func TestPersonExtractor_PanickingStrategyIsIsolated(t *testing.T) {
	t.Parallel()

	bad := extract.Strategy{Name: "bad", Extract: func(*prospect.Page) []prospect.Person {
		panic("malformed input")
	}}
	good := extract.Strategy{Name: "good", Extract: func(*prospect.Page) []prospect.Person {
		return []prospect.Person{{Name: "Amanda Lynam", Title: "Practice Manager"}}
	}}

	e := extract.NewPersonExtractor(bad, good)
	persons := e.Persons(&prospect.Page{})
	require.Len(t, persons, 1)
	assert.Equal(t, "Amanda Lynam", persons[0].Name)
}

func TestValidName(t *testing.T) {
	t.Parallel()

	valid := []string{
		"Jane Smith",
		"Christopher Needham",
		"Anna Marie Jones",
		"Sean O'Connor",
		"Amy Smith-Jones",
	}
	for _, name := range valid {
		assert.True(t, extract.ValidName(name), name)
	}

	invalid := []string{
		"Chartered Management",  // org noun suffix
		"The Practice",          // sentence opener
		"Welcome Team",          // both
		"Jane",                  // single word
		"jane smith",            // lower case
		"DENTAL CARE",           // all caps
		"Jane Smith Bds",        // credential mistaken for surname
		"Alexandra Konstantina Theodorakopoulos Papadimitriou", // above length bound
	}
	for _, name := range invalid {
		assert.False(t, extract.ValidName(name), name)
	}
}
