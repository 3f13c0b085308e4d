// Package geo agrupa funciones puras de distancia geodésica, costo de transporte
// y estimación de tiempos de entrega entre bodegas, subestaciones y obras.
package geo

import (
	"errors"
	"fmt"
	"math"
)

// EarthRadiusKm radio medio de la Tierra usado por la fórmula de haversine.
const EarthRadiusKm = 6371.0

// ErrInvalidLocation coordenadas fuera de rango, NaN o ausentes.
var ErrInvalidLocation = errors.New("ubicación inválida o ausente")

// Location par latitud/longitud en grados decimales. Inmutable una vez asignado.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Validate verifica que la latitud esté en [-90, 90] y la longitud en [-180, 180].
func (l Location) Validate() error {
	return validate(l.Lat, l.Lon)
}

func validate(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return fmt.Errorf("%w: coordenada NaN", ErrInvalidLocation)
	}
	if lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitud %.6f fuera de [-90, 90]", ErrInvalidLocation, lat)
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("%w: longitud %.6f fuera de [-180, 180]", ErrInvalidLocation, lon)
	}
	return nil
}

// DistanceKm distancia de gran círculo (haversine) en kilómetros.
// Simétrica y cero para puntos idénticos.
func DistanceKm(lat1, lon1, lat2, lon2 float64) (float64, error) {
	if err := validate(lat1, lon1); err != nil {
		return 0, err
	}
	if err := validate(lat2, lon2); err != nil {
		return 0, err
	}

	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	// Errores de redondeo pueden dejar a ligeramente fuera de [0, 1].
	a = math.Min(1, math.Max(0, a))
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c, nil
}

// Between distancia entre dos ubicaciones; nil se considera ubicación ausente.
func Between(a, b *Location) (float64, error) {
	if a == nil || b == nil {
		return 0, fmt.Errorf("%w: ubicación ausente", ErrInvalidLocation)
	}
	return DistanceKm(a.Lat, a.Lon, b.Lat, b.Lon)
}
