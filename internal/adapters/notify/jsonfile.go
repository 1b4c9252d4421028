package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Enzo-Nunes/SkyForge/internal/domain"
)

// JSONFile implementa ports.Notifier exportando el resultado completo de cada
// ciclo a un archivo JSON. La escritura es atómica (tmp + rename) para que un
// consumidor externo nunca lea un archivo a medias.
type JSONFile struct {
	path string
}

// NewJSONFile crea un exportador hacia la ruta dada.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

// exportPayload es el documento escrito por ciclo.
type exportPayload struct {
	Profits       []domain.ProfitRecord `json:"profits"`
	CalculatedAt  time.Time             `json:"calculated_at"`
	UptimeSeconds int                   `json:"uptime_seconds"`
}

// Notify escribe la lista completa rankeada, no solo el top de consola.
func (j *JSONFile) Notify(_ context.Context, records []domain.ProfitRecord, uptimeSeconds int) error {
	payload := exportPayload{
		Profits:       records,
		CalculatedAt:  time.Now().UTC(),
		UptimeSeconds: uptimeSeconds,
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("notify.JSONFile: marshal: %w", err)
	}

	tmp := j.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("notify.JSONFile: write %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, j.path); err != nil {
		return fmt.Errorf("notify.JSONFile: rename to %q: %w", filepath.Base(j.path), err)
	}
	return nil
}
