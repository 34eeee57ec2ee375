package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"accented characters", "José Ramírez", "jose-ramirez"},
		{"plain ascii", "Jose Ramirez", "jose-ramirez"},
		{"punctuation stripped", "Mike Trout Jr.", "mike-trout-jr"},
		{"apostrophe", "Logan O'Hoppe", "logan-ohoppe"},
		{"multiple spaces", "Shane   Bieber", "shane-bieber"},
		{"leading and trailing space", "  Zack Wheeler  ", "zack-wheeler"},
		{"existing hyphens collapse", "Jean--Carlos  Mejia", "jean-carlos-mejia"},
		{"uppercase", "GERRIT COLE", "gerrit-cole"},
		{"empty string", "", ""},
		{"only punctuation", "...", ""},
		{"tilde", "Eduardo Rodríguez", "eduardo-rodriguez"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{"José Ramírez", "Mike Trout Jr.", "shane-bieber", "", "  A  B  "}
	for _, in := range inputs {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once), "Slugify should be idempotent for %q", in)
	}
}

func TestSlugifyAgreementAcrossSources(t *testing.T) {
	// Yahoo and MLB render the same player differently; the slugs must agree.
	assert.Equal(t, Slugify("José Ramírez"), Slugify("Jose Ramirez"))
	assert.Equal(t, Slugify("Andrés Muñoz"), Slugify("Andres Munoz"))
}

func TestNormalizePlayerName(t *testing.T) {
	assert.Equal(t, "luis-castillo", NormalizePlayerName("Luis Castillo Jr."))
	assert.Equal(t, "luis-castillo", NormalizePlayerName("Luis Castillo"))
	assert.Equal(t, "cal-ripken", NormalizePlayerName("Cal Ripken Sr."))
	assert.Equal(t, "ken-griffey", NormalizePlayerName("Ken Griffey III"))
	assert.Equal(t, "", NormalizePlayerName(""))
}
