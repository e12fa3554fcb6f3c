package citas

import (
	"regexp"
)

// patronHoraEdicion valida H:MM o HH:MM con hora 0-23 y minutos 0-59,
// igual que la validación del formulario de edición.
var patronHoraEdicion = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

var (
	patronHoraCorta    = regexp.MustCompile(`^\d{2}:\d{2}$`)
	patronHoraUnDigito = regexp.MustCompile(`^\d{1}:\d{2}$`)
)

// NormalizarHora lleva una hora a formato HH:MM:SS. "HH:MM" recibe ":00"
// al final y "H:MM" se rellena con cero a la izquierda. Cualquier otro
// valor se devuelve sin cambios.
func NormalizarHora(hora string) string {
	if patronHoraCorta.MatchString(hora) {
		return hora + ":00"
	}
	if patronHoraUnDigito.MatchString(hora) {
		return "0" + hora + ":00"
	}
	return hora
}

// HoraEditable indica si la hora cumple el formato aceptado en la edición
func HoraEditable(hora string) bool {
	return patronHoraEdicion.MatchString(hora)
}

// Ventana de atención de los centros para el flujo de agendamiento de
// tutores. Las horas ya normalizadas se comparan lexicográficamente.
const (
	horaApertura = "07:00:00"
	horaCierre   = "17:00:00"
)

// horaEnVentana espera una hora ya normalizada a HH:MM:SS
func horaEnVentana(hora string) bool {
	return hora >= horaApertura && hora <= horaCierre
}
