package shuttle

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		line string
		want LineKind
	}{
		{
			name: "record line",
			line: "24-06-15,14:00,00042,00000",
			want: KindRecord,
		},
		{
			name: "record line starting with zero",
			line: "05-01-31,00:00,00001,00000",
			want: KindRecord,
		},
		{
			name: "serial directive",
			line: "  *Serial Number                 S01234",
			want: KindSerialMeta,
		},
		{
			name: "counter directive",
			line: "  *Counter         North Trailhead",
			want: KindCounterMeta,
		},
		{
			name: "mode directive",
			line: "  *Mode            Hourly",
			want: KindModeMeta,
		},
		{
			name: "battery directive",
			line: "  *Batt            3.61V",
			want: KindVoltMeta,
		},
		{
			name: "download time directive",
			line: "=TIME                  24-06-15 18:30:05",
			want: KindDownloadTimeMeta,
		},
		{
			name: "start time directive",
			line: "=START                 24-06-01 00:00:00",
			want: KindStartTimeMeta,
		},
		{
			name: "dock time directive",
			line: "=DOCK                       24-06-15 18:29:59",
			want: KindDockTimeMeta,
		},
		{
			name: "banner line",
			line: "Shuttle v2.11",
			want: KindOtherMeta,
		},
		{
			name: "blank line",
			line: "",
			want: KindOtherMeta,
		},
		{
			name: "whitespace only",
			line: "   ",
			want: KindOtherMeta,
		},
		{
			name: "unknown directive",
			line: "=RESET",
			want: KindOtherMeta,
		},
		{
			name: "leading space before digit is not a record",
			line: " 24-06-15,14:00,00042,00000",
			want: KindOtherMeta,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.line); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestLineKind_String(t *testing.T) {
	kinds := []LineKind{
		KindRecord, KindSerialMeta, KindCounterMeta, KindModeMeta,
		KindVoltMeta, KindDownloadTimeMeta, KindStartTimeMeta,
		KindDockTimeMeta, KindOtherMeta,
	}

	seen := make(map[string]bool)
	for _, k := range kinds {
		s := k.String()
		if s == "" || s == "unknown" {
			t.Errorf("LineKind(%d).String() = %q", k, s)
		}
		if seen[s] {
			t.Errorf("Duplicate kind name %q", s)
		}
		seen[s] = true
	}
}
