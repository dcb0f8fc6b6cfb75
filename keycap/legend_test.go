package keycap

import (
	"testing"

	"github.com/coredump/keycap-legends/config"
)

func TestDescription(t *testing.T) {
	for _, tc := range []struct {
		legend config.Legend
		want   string
	}{
		{config.Legend{Primary: "A"}, "A"},
		{config.Legend{Primary: "A", Secondary: "1"}, "A+1"},
		{config.Legend{Primary: "A", Secondary: "1", Tertiary: "F1"}, "A+1+F1"},
		{config.Legend{Primary: "A", Tertiary: "F1"}, "A+F1"},
		{config.Legend{Secondary: "1"}, "1"},
		{config.Legend{Tertiary: "F1"}, ""},
		{config.Legend{}, ""},
	} {
		if got := Description(tc.legend); got != tc.want {
			t.Errorf("Description(%+v) = %q, want %q", tc.legend, got, tc.want)
		}
	}
}

func TestFilename(t *testing.T) {
	for _, tc := range []struct {
		legend config.Legend
		row    string
		want   string
	}{
		{config.Legend{Primary: "A"}, "row_2", "K_A_row_2.3mf"},
		{config.Legend{Primary: "A", Secondary: "1"}, "row_2", "K_A_1_row_2.3mf"},
		{config.Legend{Primary: "<"}, "row_3", "K_less_row_3.3mf"},
		{config.Legend{Primary: "/", Secondary: "?"}, "row_1", "K_slash_question_row_1.3mf"},
		{config.Legend{Primary: `"`, Secondary: "*", Tertiary: "|"}, "num", "K_quote_asterisk_pipe_num.3mf"},
	} {
		if got := Filename(tc.legend, tc.row); got != tc.want {
			t.Errorf("Filename(%+v, %q) = %q, want %q", tc.legend, tc.row, got, tc.want)
		}
	}
}

func TestResolveFonts(t *testing.T) {
	settings := config.Settings{Font: "Rajdhani"}

	f := resolveFonts(config.Legend{}, settings)
	if f.primary != "Rajdhani" || f.secondary != "Rajdhani" || f.tertiary != "Rajdhani" {
		t.Errorf("all-default fonts = %+v", f)
	}

	// Secondary inherits the primary override, tertiary does not.
	f = resolveFonts(config.Legend{PrimaryFont: "Overpass"}, settings)
	if f.primary != "Overpass" || f.secondary != "Overpass" || f.tertiary != "Rajdhani" {
		t.Errorf("primary-override fonts = %+v", f)
	}

	f = resolveFonts(config.Legend{SecondaryFont: "Hack"}, settings)
	if f.primary != "Rajdhani" || f.secondary != "Hack" {
		t.Errorf("secondary-override fonts = %+v", f)
	}
}
