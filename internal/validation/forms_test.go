package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid", "petani@agrilearn.id", false},
		{"valid with subdomain", "user@mail.example.co.id", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"missing at", "petani.agrilearn.id", true},
		{"missing tld", "petani@agrilearn", true},
		{"single letter tld", "a@b.c", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		wantErr bool
	}{
		{"valid 10 digits", "0812345678", false},
		{"valid 15 digits", "081234567890123", false},
		{"too short", "1234567", true},
		{"too long", "0812345678901234", true},
		{"letters", "08123abc78", true},
		{"empty", "", true},
		{"with dashes", "0812-3456-78", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePhone(tt.phone)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword(""))
	assert.Error(t, ValidatePassword("12345"))
	assert.NoError(t, ValidatePassword("123456"))
	assert.NoError(t, ValidatePassword("a longer passphrase"))
}

func TestValidateRequired(t *testing.T) {
	err := ValidateRequired(
		Field{Name: "name", Value: "Budi"},
		Field{Name: "email", Value: ""},
		Field{Name: "password", Value: ""},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")

	assert.NoError(t, ValidateRequired(Field{Name: "name", Value: "Budi"}))
}

func TestParseKeywords(t *testing.T) {
	t.Run("trims and drops empties", func(t *testing.T) {
		kws, err := ParseKeywords(" irigasi , , pupuk ,")
		require.NoError(t, err)
		assert.Equal(t, []string{"irigasi", "pupuk"}, kws)
	})

	t.Run("empty input", func(t *testing.T) {
		kws, err := ParseKeywords("   ")
		require.NoError(t, err)
		assert.Nil(t, kws)
	})

	t.Run("at the cap", func(t *testing.T) {
		kws, err := ParseKeywords("a,b,c")
		require.NoError(t, err)
		assert.Len(t, kws, 3)
	})

	t.Run("over the cap", func(t *testing.T) {
		_, err := ParseKeywords("a,b,c,d")
		assert.Error(t, err)
	})
}

func TestServiceURLValidator(t *testing.T) {
	secure := NewServiceURLValidator()
	permissive := NewPermissiveServiceURLValidator()

	t.Run("normalizes scheme", func(t *testing.T) {
		got, err := secure.ValidateAndNormalize("api.agrilearn.id")
		require.NoError(t, err)
		assert.Equal(t, "https://api.agrilearn.id", got)
	})

	t.Run("strips trailing slash", func(t *testing.T) {
		got, err := secure.ValidateAndNormalize("https://api.agrilearn.id/v1/")
		require.NoError(t, err)
		assert.Equal(t, "https://api.agrilearn.id/v1", got)
	})

	t.Run("blocks localhost by default", func(t *testing.T) {
		_, err := secure.ValidateAndNormalize("http://localhost:4000")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "localhost")
	})

	t.Run("permissive allows localhost", func(t *testing.T) {
		got, err := permissive.ValidateAndNormalize("http://localhost:4000")
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:4000", got)
	})

	t.Run("blocks private IPs by default", func(t *testing.T) {
		_, err := secure.ValidateAndNormalize("http://192.168.1.10")
		assert.Error(t, err)
	})

	t.Run("rejects empty", func(t *testing.T) {
		_, err := secure.ValidateAndNormalize("")
		assert.Error(t, err)
	})

	t.Run("rejects traversal", func(t *testing.T) {
		_, err := secure.ValidateAndNormalize("https://api.agrilearn.id/../admin")
		assert.Error(t, err)
	})

	t.Run("rejects non-http scheme", func(t *testing.T) {
		_, err := secure.ValidateAndNormalize("ftp://api.agrilearn.id")
		assert.Error(t, err)
	})
}
