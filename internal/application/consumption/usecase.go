// Package consumption aprende cuánto material consume cada tipo de trabajo y sugiere cantidades.
package consumption

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/dto"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/ports"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain"
	model "github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/consumption"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/repository"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// Valores por defecto del aprendizaje de consumo.
const (
	DefaultSafetyFactor  = 1.2
	DefaultMinConfidence = 0.3
)

// Config parámetros de sugerencia.
type Config struct {
	SafetyFactor  float64 // factorSeguridad
	MinConfidence float64 // confianza mínima para sugerir en solicitudes automáticas
}

// LearningUseCase registra muestras de consumo y genera sugerencias por tipo de trabajo.
type LearningUseCase struct {
	txRunner  ports.TxRunner
	patterns  repository.ConsumptionPatternRepository
	materials repository.MaterialRepository
	cfg       Config
	log       zerolog.Logger
	now       func() time.Time
}

// NewLearningUseCase construye el caso de uso. Valores no positivos en cfg toman el valor por defecto.
func NewLearningUseCase(
	txRunner ports.TxRunner,
	patterns repository.ConsumptionPatternRepository,
	materials repository.MaterialRepository,
	cfg Config,
	log zerolog.Logger,
) *LearningUseCase {
	if cfg.SafetyFactor <= 0 {
		cfg.SafetyFactor = DefaultSafetyFactor
	}
	if cfg.MinConfidence <= 0 {
		cfg.MinConfidence = DefaultMinConfidence
	}
	return &LearningUseCase{
		txRunner:  txRunner,
		patterns:  patterns,
		materials: materials,
		cfg:       cfg,
		log:       log.With().Str("component", "consumption").Logger(),
		now:       time.Now,
	}
}

// MinConfidence confianza mínima configurada.
func (uc *LearningUseCase) MinConfidence() float64 { return uc.cfg.MinConfidence }

// Record incorpora una muestra al patrón (tipo_trabajo, material). El patrón se bloquea
// durante la actualización para serializar registros concurrentes.
func (uc *LearningUseCase) Record(ctx context.Context, jobType, materialID string, qty float64) (*dto.ConsumptionPatternResponse, error) {
	jobType = normalizeJobType(jobType)
	if jobType == "" {
		return nil, domain.NewValidationError("tipo_trabajo", "requerido")
	}
	if materialID == "" {
		return nil, domain.NewValidationError("material_id", "requerido")
	}
	if qty < 0 {
		return nil, domain.NewValidationError("cantidad", "no puede ser negativa")
	}
	var out *entity.ConsumptionPattern
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		p, err := repos.Patterns.LockOrInit(ctx, jobType, materialID)
		if err != nil {
			return err
		}
		model.Record(p, qty, uc.now())
		out = p
		return repos.Patterns.Save(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Debug().Str("tipo_trabajo", jobType).Str("material_id", materialID).
		Float64("confianza", out.Confidence).Msg("muestra de consumo registrada")
	return toPatternResponse(out), nil
}

// minAnomalySamples con menos muestras el promedio no es representativo.
const minAnomalySamples = 3

// CheckAnomaly compara un consumo real con el patrón. Sin patrón o con menos de
// minAnomalySamples muestras no hay anomalía.
func (uc *LearningUseCase) CheckAnomaly(ctx context.Context, jobType, materialID string, actual float64) (*dto.AnomalyResponse, error) {
	jobType = normalizeJobType(jobType)
	p, err := uc.patterns.Get(ctx, jobType, materialID)
	if err != nil {
		return nil, err
	}
	out := &dto.AnomalyResponse{JobType: jobType, MaterialID: materialID, Actual: actual}
	if p == nil {
		return out, nil
	}
	out.AverageQty = p.AverageQty
	out.Anomalous = p.TotalJobs >= minAnomalySamples && model.IsAnomaly(p, actual)
	return out, nil
}

// Suggest genera la cantidad sugerida por material para un tipo de trabajo, mayor confianza primero.
// safetyFactor nil usa el configurado.
func (uc *LearningUseCase) Suggest(ctx context.Context, jobType string, safetyFactor *float64) ([]dto.MaterialSuggestionDTO, error) {
	factor := uc.cfg.SafetyFactor
	if safetyFactor != nil {
		if *safetyFactor <= 0 {
			return nil, domain.NewValidationError("factor_seguridad", "debe ser mayor que cero")
		}
		factor = *safetyFactor
	}
	patterns, err := uc.patterns.ListByJobType(ctx, normalizeJobType(jobType))
	if err != nil {
		return nil, err
	}
	out := make([]dto.MaterialSuggestionDTO, 0, len(patterns))
	for _, p := range patterns {
		if p.TotalJobs == 0 {
			continue
		}
		s := dto.MaterialSuggestionDTO{
			MaterialID:   p.MaterialID,
			SuggestedQty: model.SuggestedQuantity(p, factor),
			AverageQty:   p.AverageQty,
			MaxQty:       p.MaxQty,
			Confidence:   p.Confidence,
			TotalJobs:    p.TotalJobs,
		}
		mat, err := uc.materials.GetByID(ctx, p.MaterialID)
		if err != nil {
			return nil, err
		}
		if mat != nil {
			s.MaterialName = mat.Name
			s.Available = mat.IsActive()
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Confidence > out[j].Confidence })
	return out, nil
}

// Qualified filtra las sugerencias aptas para una solicitud automática:
// material disponible y confianza mayor que la mínima configurada.
func (uc *LearningUseCase) Qualified(list []dto.MaterialSuggestionDTO) []dto.MaterialSuggestionDTO {
	return lo.Filter(list, func(s dto.MaterialSuggestionDTO, _ int) bool {
		return s.Available && s.Confidence > uc.cfg.MinConfidence && s.SuggestedQty.IsPositive()
	})
}

// ListPatterns patrones de un tipo de trabajo.
func (uc *LearningUseCase) ListPatterns(ctx context.Context, jobType string) ([]dto.ConsumptionPatternResponse, error) {
	list, err := uc.patterns.ListByJobType(ctx, normalizeJobType(jobType))
	if err != nil {
		return nil, err
	}
	return lo.Map(list, func(p *entity.ConsumptionPattern, _ int) dto.ConsumptionPatternResponse {
		return *toPatternResponse(p)
	}), nil
}

// normalizeJobType los tipos de trabajo se comparan en minúsculas y sin espacios extremos.
func normalizeJobType(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func toPatternResponse(p *entity.ConsumptionPattern) *dto.ConsumptionPatternResponse {
	return &dto.ConsumptionPatternResponse{
		JobType:          p.JobType,
		MaterialID:       p.MaterialID,
		AverageQty:       p.AverageQty,
		MinQty:           p.MinQty,
		MaxQty:           p.MaxQty,
		TotalJobs:        p.TotalJobs,
		TotalConsumption: p.TotalConsumption,
		Confidence:       p.Confidence,
		History:          p.History,
		UpdatedAt:        p.UpdatedAt,
	}
}
