package normalizer

import (
	"fmt"

	"roadsafety/internal/logger"
	"roadsafety/internal/models"
)

// Processor chains the normalizer, cleaner and enricher.
type Processor struct {
	normalizer *Normalizer
	cleaner    *Cleaner
	enricher   *Enricher
	log        *logger.Logger
}

// Result is the processed record set plus stage counts.
type Result struct {
	Accidents []models.Accident
	Vehicles  []models.Vehicle
	Read      int
	Dropped   int
}

// NewProcessor creates a new processor instance. A nil logger discards output.
func NewProcessor(log *logger.Logger, dateLayouts []string) *Processor {
	if log == nil {
		log = logger.Discard()
	}

	return &Processor{
		normalizer: NewNormalizer(dateLayouts),
		cleaner:    NewCleaner(),
		enricher:   NewEnricher(),
		log:        log,
	}
}

// Process turns raw accident and vehicle rows into enriched accidents.
func (p *Processor) Process(accidentRows, vehicleRows []models.RawRecord) (*Result, error) {
	// 1. Normalize
	normalized := p.normalizer.Accidents(accidentRows)
	vehicles := p.normalizer.Vehicles(vehicleRows)
	p.log.Info("Normalized input", "accidents", len(normalized), "vehicles", len(vehicles))

	// 2. Clean
	complete := p.cleaner.DropIncomplete(normalized)

	accidents, err := p.cleaner.Cast(complete)
	if err != nil {
		return nil, fmt.Errorf("cleaning failed: %w", err)
	}

	dropped := len(normalized) - len(complete)
	p.log.Info("Cleaned accidents", "rows", len(normalized), "kept", len(accidents))
	p.log.Debug("Dropped incomplete accidents", "dropped", dropped)

	// 3. Enrich
	enriched := p.enricher.Enrich(accidents, vehicles)
	p.log.Info("Enriched accidents", "rows", len(enriched))

	return &Result{
		Accidents: enriched,
		Vehicles:  vehicles,
		Read:      len(normalized),
		Dropped:   dropped,
	}, nil
}
