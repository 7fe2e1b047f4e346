// Package compat implementa el motor de compatibilidad: un puntaje simetrico
// y acotado [0,100] derivado de los conjuntos de tipos de dos perfiles.
package compat

import (
	"math"

	"pokecontact/internal/domain"
	"pokecontact/internal/typechart"
)

// Score calcula la compatibilidad entre dos perfiles. El segundo valor es
// false (sentinela "no aplica") solo cuando alguno de los perfiles es nil;
// los tipos ausentes o malformados degradan al conjunto {normal} en lugar
// de fallar.
//
// La tabla de efectividad es direccional pero la compatibilidad debe ser
// simetrica, asi que cada par de tipos promedia ambas direcciones antes de
// agregarse.
func Score(a, b *domain.Pokemon) (int, bool) {
	if a == nil || b == nil {
		return 0, false
	}
	return ScoreTypes(a.Types, b.Types), true
}

// ScoreTypes calcula el puntaje directamente sobre dos listas de tipos.
func ScoreTypes(typesA, typesB []string) int {
	if len(typesA) == 0 {
		typesA = []string{"normal"}
	}
	if len(typesB) == 0 {
		typesB = []string{"normal"}
	}

	total := 0.0
	count := 0
	for _, t1 := range typesA {
		for _, t2 := range typesB {
			forward := typechart.Effectiveness(t1, t2)
			backward := typechart.Effectiveness(t2, t1)
			total += float64(forward+backward) / 2
			count++
		}
	}

	raw := total / float64(count)

	// Renormalizacion por tramos centrada en el punto neutral: 100 de
	// efectividad cruda mapea a 50 de compatibilidad, el exceso sobre 100
	// suma hasta 50 mas, y por debajo escala linealmente hacia 0.
	var percent float64
	if raw >= 100 {
		excess := raw - 100
		percent = 50 + math.Min(50, excess/100*50)
	} else {
		percent = raw / 100 * 50
	}

	// Redondeo mitad hacia arriba; con entradas no negativas math.Round
	// coincide con esa regla (62.5 -> 63).
	return int(math.Round(math.Max(0, math.Min(100, percent))))
}
