package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckVerifyFlags(t *testing.T) {
	tests := []struct {
		name    string
		trials  int
		maxN    int
		wantErr bool
	}{
		{"defaults", 200, 24, false},
		{"empty inputs only", 1, 0, false},
		{"zero trials", 0, 24, true},
		{"negative trials", -5, 24, true},
		{"negative max-n", 10, -1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkVerifyFlags(tt.trials, tt.maxN)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
