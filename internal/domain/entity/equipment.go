package entity

// Equipment equipo o maquinaria al que se cargan salidas de bodega.
type Equipment struct {
	ID     string
	Number string // número de equipo
	Type   string // camioneta, camion, extraccion, batea, otros
	Plate  string
}
