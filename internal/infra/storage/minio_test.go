package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domain "github.com/bryanwahyu/account-risk/internal/domain/analyses"
)

func TestObjectKey(t *testing.T) {
	tests := []struct {
		username string
		id       domain.RecordID
		want     string
	}{
		{"test_user", 1, "analyses/test_user/1.json"},
		{"@natgeo", 42, "analyses/natgeo/42.json"},
		{"a/b\\c", 7, "analyses/a_b_c/7.json"},
		{"  ", 3, "analyses/_/3.json"},
		{"..", 9, "analyses/_/9.json"},
	}
	for _, tt := range tests {
		rec := &domain.Record{ID: tt.id, Assessment: domain.Assessment{Username: tt.username}}
		assert.Equal(t, tt.want, ObjectKey(rec), "username %q", tt.username)
	}
}
