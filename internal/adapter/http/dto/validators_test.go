package dto

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type addressProbe struct {
	Destination string `binding:"required,xrpl_address"`
}

func TestXRPLAddressValidator(t *testing.T) {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	valid := []string{
		"rN7n7otQDd6FczFgLdSqtcsAUxDkw6fzRH",
		"rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh",
	}
	for _, addr := range valid {
		err := v.Struct(addressProbe{Destination: addr})
		assert.NoError(t, err, "address %q", addr)
	}

	invalid := []string{
		"",
		"xN7n7otQDd6FczFgLdSqtcsAUxDkw6fzRH", // wrong prefix
		"rshort",                             // too short
		"rN7n7otQDd6FczFgLdSqtcsAUxDkw0fzRH", // 0 not in alphabet
	}
	for _, addr := range invalid {
		err := v.Struct(addressProbe{Destination: addr})
		assert.Error(t, err, "address %q", addr)
	}
}

func TestSanitizeStruct(t *testing.T) {
	type probe struct {
		Name   string
		Note   *string
		Amount int
	}
	note := "  <b>bold</b>  "
	p := probe{Name: "  hello <script>  ", Note: &note, Amount: 5}

	SanitizeStruct(&p)

	assert.Equal(t, "hello &lt;script&gt;", p.Name)
	assert.Equal(t, "&lt;b&gt;bold&lt;/b&gt;", *p.Note)
	assert.Equal(t, 5, p.Amount)
}

func TestSanitizeStruct_NonStructIsNoop(t *testing.T) {
	s := "untouched"
	SanitizeStruct(&s)
	assert.Equal(t, "untouched", s)

	SanitizeStruct(nil)
}
