package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"scripts stripped",
			`<p>hi</p><script>alert(1)</script>`,
			`<p>hi</p>`,
		},
		{
			"event handlers stripped",
			`<img src="x.jpg" onerror="alert(1)">`,
			`<img src="x.jpg">`,
		},
		{
			"formatting kept",
			`<p><strong>Pupuk</strong> dan <em>irigasi</em></p>`,
			`<p><strong>Pupuk</strong> dan <em>irigasi</em></p>`,
		},
		{
			"javascript urls stripped",
			`<a href="javascript:alert(1)">x</a>`,
			`x`,
		},
		{
			"plain text untouched",
			`tanam padi`,
			`tanam padi`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTML(tt.input))
		})
	}
}
