package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanContent(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain json", `  {"a":1}  `, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"only leading fence", "```json {\"a\":1}", `{"a":1}`},
		{"only trailing fence", "{\"a\":1}```", `{"a":1}`},
		{"control characters", "{\"a\":\"x\x00y\x07z\x0b\x0c\x1f\x7f\"}", `{"a":"xyz"}`},
		{"keeps tab newline cr", "{\"a\":\n\t1\r}", "{\"a\":\n\t1\r}"},
		{"fence only", "```", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanContent(tt.input))
		})
	}
}
