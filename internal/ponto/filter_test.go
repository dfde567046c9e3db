package ponto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/ponto/internal/model"
)

func TestFilterByName(t *testing.T) {
	employees := []model.Employee{
		{ID: 1, Nome: "Ana Souza"},
		{ID: 2, Nome: "Bruno Lima"},
		{ID: 3, Nome: "Mariana"},
	}

	tests := []struct {
		name  string
		query string
		want  []int64
	}{
		{name: "empty query keeps all", query: "", want: []int64{1, 2, 3}},
		{name: "case insensitive", query: "ANA", want: []int64{1, 3}},
		{name: "trims whitespace", query: "  lima ", want: []int64{2}},
		{name: "no match", query: "zé", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []int64
			for _, e := range FilterByName(employees, tt.query) {
				got = append(got, e.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
