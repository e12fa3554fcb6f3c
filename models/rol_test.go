package models

import "testing"

func TestRol_Valido(t *testing.T) {
	for _, r := range []Rol{RolAdministrador, RolMedico, RolDigitador, RolTutor, RolPersonalCentro} {
		if !r.Valido() {
			t.Fatalf("expected rol %d to be valid", r)
		}
	}
	for _, r := range []Rol{0, 3, 7, -1} {
		if r.Valido() {
			t.Fatalf("expected rol %d to be invalid", r)
		}
	}
}

func TestRol_EsPersonalPrivilegiado(t *testing.T) {
	casos := []struct {
		rol          Rol
		privilegiado bool
	}{
		{RolAdministrador, true},
		{RolDigitador, true},
		{RolMedico, false},
		{RolTutor, false},
		{RolPersonalCentro, false},
	}

	for _, c := range casos {
		if got := c.rol.EsPersonalPrivilegiado(); got != c.privilegiado {
			t.Fatalf("%s: expected %v, got %v", c.rol.Nombre(), c.privilegiado, got)
		}
	}
}
