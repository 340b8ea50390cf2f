package run

import (
	"encoding/json"
	"testing"

	"github.com/wesleyorama2/seqsum/pkg/metricid"
)

func TestReadInfo_Cycles(t *testing.T) {
	r := ReadInfo{Number: 1, FirstCycle: 1, LastCycle: 151}
	if got := r.TotalCycles(); got != 151 {
		t.Errorf("TotalCycles() = %d, want 151", got)
	}
	if got := r.UseableCycles(); got != 150 {
		t.Errorf("UseableCycles() = %d, want 150", got)
	}
}

func TestInfo_Validate(t *testing.T) {
	base := func() Info {
		return Info{
			Reads: []ReadInfo{
				{Number: 1, FirstCycle: 1, LastCycle: 3},
				{Number: 2, FirstCycle: 4, LastCycle: 10, IsIndex: true},
			},
			LaneCount:    2,
			SurfaceCount: 2,
			NamingMethod: metricid.FourDigit,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Info)
		wantErr bool
	}{
		{"valid", func(*Info) {}, false},
		{"no lanes", func(i *Info) { i.LaneCount = 0 }, true},
		{"too many lanes", func(i *Info) { i.LaneCount = 64 }, true},
		{"no surfaces", func(i *Info) { i.SurfaceCount = 0 }, true},
		{"overlapping reads", func(i *Info) { i.Reads[1].FirstCycle = 3 }, true},
		{"inverted range", func(i *Info) { i.Reads[0].LastCycle = 0 }, true},
		{"misnumbered read", func(i *Info) { i.Reads[1].Number = 5 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := base()
			tt.mutate(&info)
			err := info.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestInfo_TotalCycles(t *testing.T) {
	info := Info{Reads: []ReadInfo{
		{Number: 1, FirstCycle: 1, LastCycle: 3},
		{Number: 2, FirstCycle: 4, LastCycle: 10},
	}}
	if got := info.TotalCycles(); got != 10 {
		t.Errorf("TotalCycles() = %d, want 10", got)
	}
}

func TestCycleRange(t *testing.T) {
	r := NewCycleRange()
	if !r.Empty() {
		t.Fatal("NewCycleRange() should be empty")
	}
	if r.FirstCycle() != 0 || r.LastCycle() != 0 {
		t.Errorf("empty range = [%d, %d], want [0, 0]", r.FirstCycle(), r.LastCycle())
	}

	r.Update(12)
	r.Update(5)
	r.Update(9)
	if r.FirstCycle() != 5 || r.LastCycle() != 12 {
		t.Errorf("range = [%d, %d], want [5, 12]", r.FirstCycle(), r.LastCycle())
	}

	shifted := r.Shift(4)
	if shifted.FirstCycle() != 1 || shifted.LastCycle() != 8 {
		t.Errorf("Shift(4) = [%d, %d], want [1, 8]", shifted.FirstCycle(), shifted.LastCycle())
	}
	if unchanged := r.Shift(20); unchanged != r {
		t.Errorf("Shift past the end should leave the range unchanged")
	}
	if !NewCycleRange().Shift(0).Empty() {
		t.Errorf("shifting an empty range should keep it empty")
	}

	other := NewCycleRange()
	other.Update(20)
	r.Merge(other)
	if r.LastCycle() != 20 || r.FirstCycle() != 5 {
		t.Errorf("Merge() = [%d, %d], want [5, 20]", r.FirstCycle(), r.LastCycle())
	}
}

func TestCycleRange_MarshalJSON(t *testing.T) {
	r := NewCycleRange()
	r.Update(3)
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"first_cycle":3,"last_cycle":3}` {
		t.Errorf("Marshal() = %s", data)
	}
}
