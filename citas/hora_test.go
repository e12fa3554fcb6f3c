package citas

import "testing"

func TestNormalizarHora(t *testing.T) {
	casos := []struct {
		entrada  string
		esperada string
	}{
		{"14:30", "14:30:00"},
		{"9:05", "09:05:00"},
		{"07:00", "07:00:00"},
		{"14:30:00", "14:30:00"},
		{"", ""},
		{"mediodía", "mediodía"},
	}

	for _, c := range casos {
		got := NormalizarHora(c.entrada)
		if got != c.esperada {
			t.Fatalf("NormalizarHora(%q): expected %q, got %q", c.entrada, c.esperada, got)
		}
	}
}

func TestHoraEditable_Validas(t *testing.T) {
	for _, hora := range []string{"14:30", "9:30", "00:00", "23:59", "0:05"} {
		if !HoraEditable(hora) {
			t.Fatalf("expected %q to be editable", hora)
		}
	}
}

func TestHoraEditable_Invalidas(t *testing.T) {
	for _, hora := range []string{"9:5", "24:00", "14:60", "14:30:00", "", "abc"} {
		if HoraEditable(hora) {
			t.Fatalf("expected %q to be rejected", hora)
		}
	}
}

func TestHoraEnVentana(t *testing.T) {
	casos := []struct {
		hora string
		ok   bool
	}{
		{"07:00:00", true},
		{"12:30:00", true},
		{"17:00:00", true},
		{"06:59:00", false},
		{"17:01:00", false},
	}

	for _, c := range casos {
		if got := horaEnVentana(c.hora); got != c.ok {
			t.Fatalf("horaEnVentana(%q): expected %v, got %v", c.hora, c.ok, got)
		}
	}
}
