package models

// CentroVacunacion representa un centro de vacunación
type CentroVacunacion struct {
	ID        int    `json:"id_centro" db:"id_centro"`
	Nombre    string `json:"nombre" db:"nombre"`
	Direccion string `json:"direccion" db:"direccion"`
	Telefono  string `json:"telefono" db:"telefono"`
	Provincia string `json:"provincia" db:"provincia"`
}

// Vacuna representa un tipo de vacuna del esquema
type Vacuna struct {
	ID          int    `json:"id_vacuna" db:"id_vacuna"`
	Nombre      string `json:"nombre" db:"nombre"`
	Descripcion string `json:"descripcion" db:"descripcion"`
	DosisLimite int    `json:"dosis_limite" db:"dosis_limite"`
}
