package citas

import (
	"context"
	"testing"
	"time"

	"github.com/lizet96/vacunas-backend/models"
)

// Dobles en memoria de los almacenes que consume el servicio.

type citaStoreFake struct {
	citas     map[int]*models.Cita
	siguiente int
	creadas   []models.NuevaCita
	asignadas map[int]int
}

func nuevaCitaStoreFake() *citaStoreFake {
	return &citaStoreFake{
		citas:     map[int]*models.Cita{},
		asignadas: map[int]int{},
	}
}

func (f *citaStoreFake) guardar(c models.Cita) {
	f.citas[c.ID] = &c
}

func (f *citaStoreFake) ListarPorCentro(ctx context.Context, idCentro int) ([]models.CitaDetalle, error) {
	var out []models.CitaDetalle
	for _, c := range f.citas {
		if c.IDCentro == idCentro {
			out = append(out, models.CitaDetalle{Cita: *c})
		}
	}
	return out, nil
}

func (f *citaStoreFake) ListarPorUsuario(ctx context.Context, idUsuario int, rol models.Rol) ([]models.CitaDetalle, error) {
	var out []models.CitaDetalle
	for _, c := range f.citas {
		if c.IDUsuario == idUsuario {
			out = append(out, models.CitaDetalle{Cita: *c})
		}
	}
	return out, nil
}

func (f *citaStoreFake) Crear(ctx context.Context, cita models.NuevaCita) (int, error) {
	f.siguiente++
	f.creadas = append(f.creadas, cita)
	f.guardar(models.Cita{
		ID:        f.siguiente,
		IDUsuario: cita.IDUsuario,
		IDNino:    cita.IDNino,
		IDVacuna:  cita.IDVacuna,
		IDCentro:  cita.IDCentro,
		Fecha:     cita.Fecha,
		Hora:      cita.Hora,
		Estado:    cita.Estado,
	})
	return f.siguiente, nil
}

func (f *citaStoreFake) ObtenerPorID(ctx context.Context, id int) (*models.Cita, error) {
	c, ok := f.citas[id]
	if !ok {
		return nil, ErrCitaNoEncontrada
	}
	copia := *c
	return &copia, nil
}

func (f *citaStoreFake) Actualizar(ctx context.Context, id int, datos models.ActualizarCitaRequest) error {
	if _, ok := f.citas[id]; !ok {
		return ErrCitaNoEncontrada
	}
	return nil
}

func (f *citaStoreFake) ActualizarDetalle(ctx context.Context, id int, fecha, hora string, idPersonal *int) (*models.Cita, error) {
	c, ok := f.citas[id]
	if !ok {
		return nil, ErrCitaNoEncontrada
	}
	if c.Estado == models.EstadoAtendida {
		return nil, ErrCitaAtendida
	}
	if !c.Estado.PuedeEditarse() {
		return nil, ErrEstadoNoEditable
	}
	c.Fecha = fecha
	c.Hora = hora
	if idPersonal != nil {
		c.IDPersonalSalud = idPersonal
	}
	copia := *c
	return &copia, nil
}

func (f *citaStoreFake) CambiarEstado(ctx context.Context, id int, desde, hacia models.EstadoCita, idPersonal *int) (bool, error) {
	c, ok := f.citas[id]
	if !ok || c.Estado != desde {
		return false, nil
	}
	c.Estado = hacia
	if idPersonal != nil {
		c.IDPersonalSalud = idPersonal
	}
	return true, nil
}

func (f *citaStoreFake) AsignarPersonal(ctx context.Context, id int, idPersonal int) error {
	c, ok := f.citas[id]
	if !ok {
		return ErrCitaNoEncontrada
	}
	c.IDPersonalSalud = &idPersonal
	f.asignadas[id] = idPersonal
	return nil
}

type catalogoStoreFake struct {
	lotes        map[int]*models.LoteVacuna
	centros      map[int]int
	roles        map[int]models.Rol
	dosisPrevias int
	medicos      []models.Medico
}

func nuevoCatalogoStoreFake() *catalogoStoreFake {
	return &catalogoStoreFake{
		lotes:   map[int]*models.LoteVacuna{},
		centros: map[int]int{},
		roles:   map[int]models.Rol{},
	}
}

func (f *catalogoStoreFake) ObtenerLote(ctx context.Context, idLote int) (*models.LoteVacuna, error) {
	l, ok := f.lotes[idLote]
	if !ok {
		return nil, nil
	}
	copia := *l
	return &copia, nil
}

func (f *catalogoStoreFake) ObtenerCentroDePersonal(ctx context.Context, idPersonal int) (int, error) {
	return f.centros[idPersonal], nil
}

func (f *catalogoStoreFake) ObtenerRolDePersonal(ctx context.Context, idPersonal int) (models.Rol, error) {
	return f.roles[idPersonal], nil
}

func (f *catalogoStoreFake) ContarDosisAplicadas(ctx context.Context, idUsuario int, idNino *int, idVacuna int) (int, error) {
	return f.dosisPrevias, nil
}

func (f *catalogoStoreFake) ListarMedicosPorCentro(ctx context.Context, idCentro int) ([]models.Medico, error) {
	return f.medicos, nil
}

type registroStoreFake struct {
	llamadas int
	ultimo   models.RegistroVacunacion
	opciones OpcionesProximaDosis
}

func (f *registroStoreFake) RegistrarVacunacion(ctx context.Context, registro models.RegistroVacunacion, opciones OpcionesProximaDosis) (string, error) {
	f.llamadas++
	f.ultimo = registro
	f.opciones = opciones
	return "Vacunación registrada exitosamente", nil
}

// ahoraFija es el reloj de las pruebas: 1 de marzo de 2026.
func ahoraFija() time.Time {
	return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
}

func servicioDePrueba() (*Service, *citaStoreFake, *catalogoStoreFake, *registroStoreFake) {
	cs := nuevaCitaStoreFake()
	cat := nuevoCatalogoStoreFake()
	reg := &registroStoreFake{}
	return NewService(cs, cat, reg, ahoraFija), cs, cat, reg
}

func TestCrearCita_NormalizaHoraYEstadoInicial(t *testing.T) {
	svc, cs, _, _ := servicioDePrueba()

	actor := Actor{IDUsuario: 10, Rol: models.RolTutor}
	cita, err := svc.CrearCita(context.Background(), actor, models.CrearCitaRequest{
		IDVacuna: 1,
		IDCentro: 2,
		Fecha:    "2026-03-15",
		Hora:     "9:30",
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if cita.Hora != "09:30:00" {
		t.Fatalf("expected hora %q, got %q", "09:30:00", cita.Hora)
	}
	if cita.Estado != models.EstadoAgendada {
		t.Fatalf("expected estado %q, got %q", models.EstadoAgendada, cita.Estado)
	}
	if len(cs.creadas) != 1 {
		t.Fatalf("expected 1 insert, got %d", len(cs.creadas))
	}
	if cs.creadas[0].IDUsuario != 10 {
		t.Fatalf("expected id_usuario 10, got %d", cs.creadas[0].IDUsuario)
	}
}

func TestCrearCita_TutorFueraDeVentana(t *testing.T) {
	svc, cs, _, _ := servicioDePrueba()

	actor := Actor{IDUsuario: 10, Rol: models.RolTutor}
	_, err := svc.CrearCita(context.Background(), actor, models.CrearCitaRequest{
		IDVacuna: 1,
		IDCentro: 2,
		Fecha:    "2026-03-15",
		Hora:     "18:00",
	})
	if KindDe(err) != KindValidacion {
		t.Fatalf("expected KindValidacion, got %v (err=%v)", KindDe(err), err)
	}
	if len(cs.creadas) != 0 {
		t.Fatalf("expected no insert, got %d", len(cs.creadas))
	}
}

func TestCrearCita_PersonalNoRestringidoPorVentana(t *testing.T) {
	svc, _, _, _ := servicioDePrueba()

	actor := Actor{IDUsuario: 3, Rol: models.RolPersonalCentro, IDCentro: 2}
	_, err := svc.CrearCita(context.Background(), actor, models.CrearCitaRequest{
		IDVacuna: 1,
		IDCentro: 2,
		Fecha:    "2026-03-15",
		Hora:     "18:00",
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
}

func TestCrearCita_CamposRequeridos(t *testing.T) {
	svc, _, _, _ := servicioDePrueba()

	actor := Actor{IDUsuario: 10, Rol: models.RolTutor}
	_, err := svc.CrearCita(context.Background(), actor, models.CrearCitaRequest{
		IDVacuna: 1,
		Fecha:    "2026-03-15",
	})
	if KindDe(err) != KindValidacion {
		t.Fatalf("expected KindValidacion, got %v", KindDe(err))
	}
}

func TestListarCitas_PersonalSinCentro(t *testing.T) {
	svc, _, _, _ := servicioDePrueba()

	_, err := svc.ListarCitas(context.Background(), Actor{IDUsuario: 3, Rol: models.RolPersonalCentro})
	if KindDe(err) != KindValidacion {
		t.Fatalf("expected KindValidacion, got %v", KindDe(err))
	}
}

func TestActualizarCita_RolNoAutorizado(t *testing.T) {
	svc, _, _, _ := servicioDePrueba()

	err := svc.ActualizarCita(context.Background(), Actor{IDUsuario: 10, Rol: models.RolTutor}, 1, models.ActualizarCitaRequest{})
	if KindDe(err) != KindNoAutorizado {
		t.Fatalf("expected KindNoAutorizado, got %v", KindDe(err))
	}
}

func TestEditarCita_FormatoHoraInvalido(t *testing.T) {
	svc, _, _, _ := servicioDePrueba()

	actor := Actor{IDUsuario: 3, Rol: models.RolPersonalCentro, IDCentro: 2}
	_, err := svc.EditarCita(context.Background(), actor, 1, models.EditarCitaRequest{
		Fecha: "2026-03-15",
		Hora:  "9:5",
	})
	if KindDe(err) != KindValidacion {
		t.Fatalf("expected KindValidacion for hora 9:5, got %v", KindDe(err))
	}
}

func TestEditarCita_CitaAtendida(t *testing.T) {
	svc, cs, _, _ := servicioDePrueba()
	cs.guardar(models.Cita{ID: 1, IDCentro: 2, Estado: models.EstadoAtendida})

	actor := Actor{IDUsuario: 3, Rol: models.RolPersonalCentro, IDCentro: 2}
	_, err := svc.EditarCita(context.Background(), actor, 1, models.EditarCitaRequest{
		Fecha: "2026-03-15",
		Hora:  "10:00",
	})
	if KindDe(err) != KindConflicto {
		t.Fatalf("expected KindConflicto, got %v", KindDe(err))
	}
}

func TestEditarCita_Confirmada(t *testing.T) {
	svc, cs, _, _ := servicioDePrueba()
	cs.guardar(models.Cita{ID: 1, IDCentro: 2, Estado: models.EstadoConfirmada})

	actor := Actor{IDUsuario: 3, Rol: models.RolPersonalCentro, IDCentro: 2}
	cita, err := svc.EditarCita(context.Background(), actor, 1, models.EditarCitaRequest{
		Fecha: "2026-03-20",
		Hora:  "10:00",
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if cita.Hora != "10:00:00" {
		t.Fatalf("expected hora normalizada %q, got %q", "10:00:00", cita.Hora)
	}
	if cita.Estado != models.EstadoConfirmada {
		t.Fatalf("edit must not change estado, got %q", cita.Estado)
	}
}

func TestAsignarMedico_CitaDeOtroCentro(t *testing.T) {
	svc, cs, cat, _ := servicioDePrueba()
	cs.guardar(models.Cita{ID: 1, IDCentro: 9, Estado: models.EstadoAgendada})
	cat.roles[7] = models.RolMedico
	cat.centros[7] = 9

	actor := Actor{IDUsuario: 3, Rol: models.RolPersonalCentro, IDCentro: 2}
	r, err := svc.AsignarMedico(context.Background(), actor, 1, 7)
	if err != nil {
		t.Fatalf("business rejection must not be an error, got %v", err)
	}
	if r.Exito {
		t.Fatalf("expected Exito=false")
	}
	if len(cs.asignadas) != 0 {
		t.Fatalf("expected no assignment, got %v", cs.asignadas)
	}
}

func TestAsignarMedico_RolIncorrecto(t *testing.T) {
	svc, cs, cat, _ := servicioDePrueba()
	cs.guardar(models.Cita{ID: 1, IDCentro: 2, Estado: models.EstadoAgendada})
	cat.roles[7] = models.RolDigitador
	cat.centros[7] = 2

	actor := Actor{IDUsuario: 3, Rol: models.RolPersonalCentro, IDCentro: 2}
	r, err := svc.AsignarMedico(context.Background(), actor, 1, 7)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if r.Exito {
		t.Fatalf("expected Exito=false for non-medico personnel")
	}
	if len(cs.asignadas) != 0 {
		t.Fatalf("expected no assignment, got %v", cs.asignadas)
	}
}

func TestAsignarMedico_CitaAtendida(t *testing.T) {
	svc, cs, cat, _ := servicioDePrueba()
	cs.guardar(models.Cita{ID: 1, IDCentro: 2, Estado: models.EstadoAtendida})
	cat.roles[7] = models.RolMedico
	cat.centros[7] = 2

	actor := Actor{IDUsuario: 3, Rol: models.RolPersonalCentro, IDCentro: 2}
	r, err := svc.AsignarMedico(context.Background(), actor, 1, 7)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if r.Exito {
		t.Fatalf("expected Exito=false for attended appointment")
	}
}

func TestAsignarMedico_Exitoso(t *testing.T) {
	svc, cs, cat, _ := servicioDePrueba()
	cs.guardar(models.Cita{ID: 1, IDCentro: 2, Estado: models.EstadoAgendada})
	cat.roles[7] = models.RolMedico
	cat.centros[7] = 2

	actor := Actor{IDUsuario: 3, Rol: models.RolPersonalCentro, IDCentro: 2}
	r, err := svc.AsignarMedico(context.Background(), actor, 1, 7)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if !r.Exito {
		t.Fatalf("expected Exito=true, got mensaje %q", r.Mensaje)
	}
	if cs.asignadas[1] != 7 {
		t.Fatalf("expected medico 7 assigned, got %v", cs.asignadas)
	}
	if cs.citas[1].Estado != models.EstadoAgendada {
		t.Fatalf("assignment must not change estado, got %q", cs.citas[1].Estado)
	}
}

func TestConfirmarCita_Transicion(t *testing.T) {
	svc, cs, cat, _ := servicioDePrueba()
	cs.guardar(models.Cita{ID: 1, IDCentro: 2, Estado: models.EstadoAgendada})
	cat.roles[7] = models.RolMedico
	cat.centros[7] = 2

	actor := Actor{IDUsuario: 3, Rol: models.RolPersonalCentro, IDCentro: 2}
	cita, err := svc.ConfirmarCita(context.Background(), actor, 1, 7)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if cita.Estado != models.EstadoConfirmada {
		t.Fatalf("expected estado Confirmada, got %q", cita.Estado)
	}
	if cita.IDPersonalSalud == nil || *cita.IDPersonalSalud != 7 {
		t.Fatalf("expected medico 7 on confirmed cita")
	}

	// La segunda confirmación no encuentra la cita en Agendada
	_, err = svc.ConfirmarCita(context.Background(), actor, 1, 7)
	if KindDe(err) != KindConflicto {
		t.Fatalf("expected KindConflicto on double confirm, got %v", KindDe(err))
	}
}

func TestConfirmarCita_MedicoDeOtroCentro(t *testing.T) {
	svc, cs, cat, _ := servicioDePrueba()
	cs.guardar(models.Cita{ID: 1, IDCentro: 2, Estado: models.EstadoAgendada})
	cat.roles[7] = models.RolMedico
	cat.centros[7] = 9

	actor := Actor{IDUsuario: 3, Rol: models.RolPersonalCentro, IDCentro: 2}
	_, err := svc.ConfirmarCita(context.Background(), actor, 1, 7)
	if KindDe(err) != KindConflicto {
		t.Fatalf("expected KindConflicto, got %v", KindDe(err))
	}
	if cs.citas[1].Estado != models.EstadoAgendada {
		t.Fatalf("failed confirm must not change estado, got %q", cs.citas[1].Estado)
	}
}

func loteVigente(id, idVacuna, cantidad int) *models.LoteVacuna {
	return &models.LoteVacuna{
		ID:                 id,
		IDVacuna:           idVacuna,
		IDCentro:           2,
		NumeroLote:         "L-001",
		FechaCaducidad:     "2027-01-01",
		CantidadDisponible: cantidad,
	}
}

func TestRegistrarVacunacion_RolNoAutorizado(t *testing.T) {
	svc, _, _, reg := servicioDePrueba()

	actor := Actor{IDUsuario: 10, Rol: models.RolTutor}
	_, err := svc.RegistrarVacunacion(context.Background(), actor, 1, models.RegistrarVacunacionRequest{
		IDLote:          5,
		IDPersonalSalud: 7,
	})
	if KindDe(err) != KindNoAutorizado {
		t.Fatalf("expected KindNoAutorizado, got %v", KindDe(err))
	}
	if reg.llamadas != 0 {
		t.Fatalf("expected no registro call, got %d", reg.llamadas)
	}
}

func TestRegistrarVacunacion_LoteAgotado(t *testing.T) {
	svc, cs, cat, reg := servicioDePrueba()
	cs.guardar(models.Cita{ID: 1, IDVacuna: 4, IDCentro: 2, Estado: models.EstadoConfirmada})
	cat.lotes[5] = loteVigente(5, 4, 0)

	actor := Actor{IDUsuario: 3, Rol: models.RolPersonalCentro, IDCentro: 2}
	_, err := svc.RegistrarVacunacion(context.Background(), actor, 1, models.RegistrarVacunacionRequest{
		IDLote:          5,
		IDPersonalSalud: 7,
	})
	if KindDe(err) != KindValidacion {
		t.Fatalf("expected KindValidacion for empty lot, got %v", KindDe(err))
	}
	if reg.llamadas != 0 {
		t.Fatalf("empty lot must fail before any mutation, got %d calls", reg.llamadas)
	}
	if cs.citas[1].Estado != models.EstadoConfirmada {
		t.Fatalf("estado must not change, got %q", cs.citas[1].Estado)
	}
}

func TestRegistrarVacunacion_LoteCaducado(t *testing.T) {
	svc, cs, cat, reg := servicioDePrueba()
	cs.guardar(models.Cita{ID: 1, IDVacuna: 4, IDCentro: 2, Estado: models.EstadoAgendada})
	lote := loteVigente(5, 4, 10)
	lote.FechaCaducidad = "2025-12-31"
	cat.lotes[5] = lote

	actor := Actor{IDUsuario: 3, Rol: models.RolPersonalCentro, IDCentro: 2}
	_, err := svc.RegistrarVacunacion(context.Background(), actor, 1, models.RegistrarVacunacionRequest{
		IDLote:          5,
		IDPersonalSalud: 7,
	})
	if KindDe(err) != KindValidacion {
		t.Fatalf("expected KindValidacion for expired lot, got %v", KindDe(err))
	}
	if reg.llamadas != 0 {
		t.Fatalf("expected no registro call, got %d", reg.llamadas)
	}
}

func TestRegistrarVacunacion_LoteDeOtraVacuna(t *testing.T) {
	svc, cs, cat, _ := servicioDePrueba()
	cs.guardar(models.Cita{ID: 1, IDVacuna: 4, IDCentro: 2, Estado: models.EstadoAgendada})
	cat.lotes[5] = loteVigente(5, 99, 10)

	actor := Actor{IDUsuario: 3, Rol: models.RolPersonalCentro, IDCentro: 2}
	_, err := svc.RegistrarVacunacion(context.Background(), actor, 1, models.RegistrarVacunacionRequest{
		IDLote:          5,
		IDPersonalSalud: 7,
	})
	if KindDe(err) != KindValidacion {
		t.Fatalf("expected KindValidacion for mismatched vaccine, got %v", KindDe(err))
	}
}

func TestRegistrarVacunacion_CitaYaAtendida(t *testing.T) {
	svc, cs, cat, reg := servicioDePrueba()
	cs.guardar(models.Cita{ID: 1, IDVacuna: 4, IDCentro: 2, Estado: models.EstadoAtendida})
	cat.lotes[5] = loteVigente(5, 4, 10)

	actor := Actor{IDUsuario: 3, Rol: models.RolPersonalCentro, IDCentro: 2}
	_, err := svc.RegistrarVacunacion(context.Background(), actor, 1, models.RegistrarVacunacionRequest{
		IDLote:          5,
		IDPersonalSalud: 7,
	})
	if KindDe(err) != KindConflicto {
		t.Fatalf("expected KindConflicto, got %v", KindDe(err))
	}
	if reg.llamadas != 0 {
		t.Fatalf("expected no registro call, got %d", reg.llamadas)
	}
}

func TestRegistrarVacunacion_NumeroDosis(t *testing.T) {
	svc, cs, cat, reg := servicioDePrueba()
	cs.guardar(models.Cita{ID: 1, IDUsuario: 10, IDVacuna: 4, IDCentro: 2, Estado: models.EstadoConfirmada})
	cat.lotes[5] = loteVigente(5, 4, 10)
	cat.dosisPrevias = 2

	actor := Actor{IDUsuario: 3, Rol: models.RolPersonalCentro, IDCentro: 2}
	resultado, err := svc.RegistrarVacunacion(context.Background(), actor, 1, models.RegistrarVacunacionRequest{
		IDLote:          5,
		IDPersonalSalud: 7,
		NombrePersonal:  "Dra. Pérez",
		DosisAplicada:   "0.5 ml",
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if resultado.NumeroDosis != 3 {
		t.Fatalf("expected numero_dosis 3, got %d", resultado.NumeroDosis)
	}
	if reg.llamadas != 1 {
		t.Fatalf("expected 1 registro call, got %d", reg.llamadas)
	}
	if reg.ultimo.NumeroDosis != 3 {
		t.Fatalf("expected persisted numero_dosis 3, got %d", reg.ultimo.NumeroDosis)
	}
	if reg.ultimo.IDCita != 1 || reg.ultimo.IDLote != 5 {
		t.Fatalf("unexpected registro: %+v", reg.ultimo)
	}
}

func TestRegistrarVacunacion_ProximaDosisAntesDelPlazo(t *testing.T) {
	svc, cs, cat, reg := servicioDePrueba()
	cs.guardar(models.Cita{ID: 1, IDVacuna: 4, IDCentro: 2, Estado: models.EstadoAgendada})
	cat.lotes[5] = loteVigente(5, 4, 10)

	actor := Actor{IDUsuario: 3, Rol: models.RolPersonalCentro, IDCentro: 2}
	_, err := svc.RegistrarVacunacion(context.Background(), actor, 1, models.RegistrarVacunacionRequest{
		IDLote:               5,
		IDPersonalSalud:      7,
		RequiereProximaDosis: true,
		FechaProximaDosis:    "2026-03-10",
	})
	if KindDe(err) != KindValidacion {
		t.Fatalf("expected KindValidacion for date inside 21-day window, got %v", KindDe(err))
	}
	if reg.llamadas != 0 {
		t.Fatalf("expected no registro call, got %d", reg.llamadas)
	}
}

func TestRegistrarVacunacion_ProximaDosisAgendada(t *testing.T) {
	svc, cs, cat, reg := servicioDePrueba()
	cs.guardar(models.Cita{ID: 1, IDUsuario: 10, IDVacuna: 4, IDCentro: 2, Hora: "09:00:00", Estado: models.EstadoAgendada})
	cat.lotes[5] = loteVigente(5, 4, 10)

	actor := Actor{IDUsuario: 3, Rol: models.RolPersonalCentro, IDCentro: 2}
	_, err := svc.RegistrarVacunacion(context.Background(), actor, 1, models.RegistrarVacunacionRequest{
		IDLote:               5,
		IDPersonalSalud:      7,
		RequiereProximaDosis: true,
		FechaProximaDosis:    "2026-04-01",
		AgendarProximaCita:   true,
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if !reg.opciones.Requerida || !reg.opciones.AgendarCita {
		t.Fatalf("expected follow-up options persisted, got %+v", reg.opciones)
	}
	if reg.opciones.Plantilla.Fecha != "2026-04-01" {
		t.Fatalf("expected follow-up fecha 2026-04-01, got %q", reg.opciones.Plantilla.Fecha)
	}
	if reg.opciones.Plantilla.Estado != models.EstadoAgendada {
		t.Fatalf("follow-up cita must start Agendada, got %q", reg.opciones.Plantilla.Estado)
	}
}

func TestObtenerMedicosPorCentro_SinCentro(t *testing.T) {
	svc, _, _, _ := servicioDePrueba()

	_, err := svc.ObtenerMedicosPorCentro(context.Background(), 0)
	if KindDe(err) != KindValidacion {
		t.Fatalf("expected KindValidacion, got %v", KindDe(err))
	}
}
