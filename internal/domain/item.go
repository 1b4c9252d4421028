package domain

// ForgeItem es la definición de un item forjable: receta, requisitos y duración.
// Viene del recipe store (el scraper de la wiki lo mantiene, fuera de este proceso).
type ForgeItem struct {
	Name          string
	DurationHours float64        // > 0 siempre
	Recipe        map[string]int // material → cantidad
	Requirements  map[string]int // requisito → nivel mínimo
}

// Unlocked devuelve true si los niveles del jugador cumplen todos los
// requisitos del item. Un requisito ausente en levels cuenta como nivel 0.
func (f ForgeItem) Unlocked(levels map[string]int) bool {
	for req, min := range f.Requirements {
		if levels[req] < min {
			return false
		}
	}
	return true
}
