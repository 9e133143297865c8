package s3_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"renthubber/infras/s3"
)

func TestObject_Key(t *testing.T) {
	tests := []struct {
		name   string
		object s3.Object
		want   string
	}{
		{name: "directory and name", object: s3.Object{Directory: "reconciliation", Name: "report.json"}, want: "reconciliation/report.json"},
		{name: "no directory", object: s3.Object{Name: "report.json"}, want: "report.json"},
		{name: "leading slash is dropped", object: s3.Object{Directory: "/reconciliation/", Name: "report.json"}, want: "reconciliation/report.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.object.Key())
		})
	}
}

func TestLocation(t *testing.T) {
	assert.Equal(t, "s3://reports/reconciliation/report.json", s3.Location("reports", "reconciliation/report.json"))
}
