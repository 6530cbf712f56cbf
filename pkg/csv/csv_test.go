package csv

import (
	"errors"
	"strings"
	"testing"

	"github.com/yurifrl/termsheet/pkg/models"
)

func TestCreate(t *testing.T) {
	reg := models.NewRegistry()
	reg.Add("Issue Price", "Rs. 95,500/-")
	reg.Add("Tenor In Days", "730")
	reg.Add("tenor_days_num", "730")

	got, err := Create(reg, nil)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	want := "Issue Price,Tenor In Days,tenor_days_num\n\"Rs. 95,500/-\",730,730\n"
	if string(got) != want {
		t.Errorf("Create() = %q, want %q", got, want)
	}

	rawOnly := func(f models.Field) bool { return !strings.Contains(f.Key, "_") }
	got, err = Create(reg, rawOnly)
	if err != nil {
		t.Fatalf("Create(filter) error = %v", err)
	}
	want = "Issue Price,Tenor In Days\n\"Rs. 95,500/-\",730\n"
	if string(got) != want {
		t.Errorf("Create(filter) = %q, want %q", got, want)
	}
}

type failingWriter struct{}

var errDiskFull = errors.New("disk full")

func (failingWriter) Write([]byte) (int, error) { return 0, errDiskFull }

func TestWriteReportsWriterErrors(t *testing.T) {
	reg := models.NewRegistry()
	reg.Add("Issue Price", "Rs. 95,500/-")

	err := Write(failingWriter{}, reg, nil)
	if !errors.Is(err, errDiskFull) {
		t.Errorf("Write() error = %v, want %v", err, errDiskFull)
	}
}
