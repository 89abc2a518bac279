package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHumanizeKey(t *testing.T) {
	keys := map[string]string{
		"total_institutions": "Total Institutions",
		"gpa":                "GPA",
		"nirf-rank":          "NIRF Rank",
		"ábaco_total":        "Ábaco Total",
		"état":               "État",
		"pass_rateOfYear":    "Pass RateOfYear",
		"":                   "",
	}
	for in, want := range keys {
		assert.Equal(t, want, HumanizeKey(in), in)
	}
}
