// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package profile

import (
	"regexp"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/concierge/internal/model"
)

func TestExtract_Phrasings(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		pattern string
	}{
		{"my name is", "Hi, my name is Anna", "Anna", "my-name-is"},
		{"i'm", "I'm Claire and I need a serum", "Claire", "i'm"},
		{"im without apostrophe", "im Bea", "Bea", "i'm"},
		{"curly apostrophe", "I’m Dora", "Dora", "i'm"},
		{"i am", "I am Marie-Louise", "Marie-Louise", "i-am"},
		{"call me", "please call me Jo", "Jo", "call-me"},
		{"upper case", "MY NAME IS ANNA", "ANNA", "my-name-is"},
		{"unicode", "my name is Zoë-Lee", "Zoë-Lee", "my-name-is"},
		{"apostrophe in name", "call me D'Arcy", "D'Arcy", "call-me"},
		{"stops at punctuation", "I'm Anna.", "Anna", "i'm"},
	}

	ex := New()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fact, ok := ex.Extract(tc.input)
			require.True(t, ok)
			assert.Equal(t, tc.want, fact.Value)
			assert.Equal(t, tc.pattern, fact.Pattern)
			assert.Equal(t, "name", fact.Field)
		})
	}
}

func TestExtract_NoMatch(t *testing.T) {
	ex := New()
	for _, input := range []string{
		"tell me about shampoo",
		"",
		"my name is X",
		"him Bob",
	} {
		_, ok := ex.Extract(input)
		assert.False(t, ok, input)
	}
}

func TestExtract_Bounds(t *testing.T) {
	fact, ok := New().Extract("my name is Zoë-Lee")
	require.True(t, ok)
	n := utf8.RuneCountInString(fact.Value)
	assert.GreaterOrEqual(t, n, 2)
	assert.LessOrEqual(t, n, 30)

	long := "my name is " + "abcdefghijklmnopqrstuvwxyzabcdefghij"
	fact, ok = New().Extract(long)
	require.True(t, ok)
	assert.Equal(t, 30, utf8.RuneCountInString(fact.Value))
}

func TestExtract_FirstPatternWins(t *testing.T) {
	fact, ok := New().Extract("call me Jo, but my name is Joanna")
	require.True(t, ok)
	assert.Equal(t, "Joanna", fact.Value)

	custom := New(
		Pattern{Name: "call-me", Expr: regexp.MustCompile(`(?i)call me (\w{2,30})`)},
		Pattern{Name: "my-name-is", Expr: regexp.MustCompile(`(?i)my name is (\w{2,30})`)},
	)
	fact, ok = custom.Extract("call me Jo, but my name is Joanna")
	require.True(t, ok)
	assert.Equal(t, "Jo", fact.Value)
}

func TestDefaultPatterns_FreshCopy(t *testing.T) {
	a := DefaultPatterns()
	a[0] = Pattern{Name: "broken"}
	assert.Equal(t, "my-name-is", DefaultPatterns()[0].Name)

	ex := New()
	p := ex.Patterns()
	p[0] = Pattern{Name: "broken"}
	assert.Equal(t, "my-name-is", ex.Patterns()[0].Name)
}

func TestObserve_OverwritePolicy(t *testing.T) {
	ex := New()
	prof := model.NewProfile()

	ack, ok := ex.Observe(prof, "my name is Anna")
	require.True(t, ok)
	assert.Equal(t, "Anna", ack.Name)
	assert.Equal(t, "Nice to meet you, Anna! I'll remember your name for this session.", ack.Text())

	ack, ok = ex.Observe(prof, "call me Ana")
	require.True(t, ok)
	assert.Equal(t, "Ana", ack.Name)
	name, _ := prof.Name()
	assert.Equal(t, "Ana", name)

	_, ok = ex.Observe(prof, "call me ANA")
	assert.False(t, ok)
	name, _ = prof.Name()
	assert.Equal(t, "Ana", name)

	_, ok = ex.Observe(prof, "tell me about shampoo")
	assert.False(t, ok)
	name, _ = prof.Name()
	assert.Equal(t, "Ana", name)
}

func TestObserve_SameNameDifferentCase(t *testing.T) {
	ex := New()
	prof := model.NewProfile()
	prof.SetName("Anna")

	_, ok := ex.Observe(prof, "call me ANNA")
	assert.False(t, ok)
	name, _ := prof.Name()
	assert.Equal(t, "Anna", name)
}

func TestSameName(t *testing.T) {
	assert.True(t, SameName("Zoë", "ZOË"))
	assert.True(t, SameName("Zoë", "Zoë"))
	assert.False(t, SameName("Anna", "Ana"))
}
