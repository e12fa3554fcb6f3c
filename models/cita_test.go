package models

import (
	"testing"
	"time"
)

func TestEstadoCita_Transiciones(t *testing.T) {
	casos := []struct {
		estado      EstadoCita
		editable    bool
		confirmable bool
		atendible   bool
	}{
		{EstadoAgendada, true, true, true},
		{EstadoConfirmada, true, false, true},
		{EstadoAtendida, false, false, false},
		{EstadoCancelada, false, false, false},
	}

	for _, c := range casos {
		if got := c.estado.PuedeEditarse(); got != c.editable {
			t.Fatalf("%s.PuedeEditarse: expected %v, got %v", c.estado, c.editable, got)
		}
		if got := c.estado.PuedeConfirmarse(); got != c.confirmable {
			t.Fatalf("%s.PuedeConfirmarse: expected %v, got %v", c.estado, c.confirmable, got)
		}
		if got := c.estado.PuedeAtenderse(); got != c.atendible {
			t.Fatalf("%s.PuedeAtenderse: expected %v, got %v", c.estado, c.atendible, got)
		}
	}
}

func TestEstadoCita_Valido(t *testing.T) {
	for _, e := range []EstadoCita{EstadoAgendada, EstadoConfirmada, EstadoAtendida, EstadoCancelada} {
		if !e.Valido() {
			t.Fatalf("expected %q to be valid", e)
		}
	}
	if EstadoCita("Pendiente").Valido() {
		t.Fatalf("expected %q to be invalid", "Pendiente")
	}
	if EstadoCita("").Valido() {
		t.Fatalf("expected empty estado to be invalid")
	}
}

func TestLoteVacuna_Caducado(t *testing.T) {
	hoy := time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)

	casos := []struct {
		caducidad string
		caducado  bool
	}{
		{"2026-03-02", false},
		{"2026-03-01", false},
		{"2026-02-28", true},
		{"no-es-fecha", true},
	}

	for _, c := range casos {
		lote := LoteVacuna{FechaCaducidad: c.caducidad}
		if got := lote.Caducado(hoy); got != c.caducado {
			t.Fatalf("Caducado(%q): expected %v, got %v", c.caducidad, c.caducado, got)
		}
	}
}
