package request_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/dto"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/ports"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/request"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/infrastructure/memory"
)

var (
	tecnico   = entity.Actor{ID: "tec-1", Role: entity.RoleTechnician}
	bodeguero = entity.Actor{ID: "bod-1", Role: entity.RoleBodeguero}
	analista  = entity.Actor{ID: "ana-1", Role: entity.RoleAnalyst}
)

type mockSuggester struct{ mock.Mock }

func (m *mockSuggester) Suggest(ctx context.Context, jobType string, f *float64) ([]dto.MaterialSuggestionDTO, error) {
	args := m.Called(ctx, jobType, f)
	return args.Get(0).([]dto.MaterialSuggestionDTO), args.Error(1)
}

func (m *mockSuggester) Qualified(list []dto.MaterialSuggestionDTO) []dto.MaterialSuggestionDTO {
	return m.Called(list).Get(0).([]dto.MaterialSuggestionDTO)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) Notify(ctx context.Context, n ports.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func setup(t *testing.T) (*request.MaterialRequestUseCase, *mockSuggester, *mockNotifier) {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	for _, m := range []*entity.Material{
		{ID: "mat-m", Name: "Cable UTP", UnitCost: decimal.NewFromInt(1000), Status: entity.MaterialStatusActive},
		{ID: "mat-x", Name: "Medidor viejo", Status: entity.MaterialStatusInactive},
	} {
		require.NoError(t, repos.Materials.Create(context.Background(), m))
	}
	sug := &mockSuggester{}
	notif := &mockNotifier{}
	uc := request.NewMaterialRequestUseCase(store, repos.Requests, sug, notif, zerolog.Nop())
	return uc, sug, notif
}

func manual(qty int64) dto.CreateMaterialRequestRequest {
	return dto.CreateMaterialRequestRequest{
		Materials: []dto.RequestLine{{MaterialID: "mat-m", Quantity: decimal.NewFromInt(qty)}},
		Reason:    "cuadrilla nueva",
	}
}

func TestCreate_TecnicoSolicitaParaSiMismo(t *testing.T) {
	uc, _, _ := setup(t)
	out, err := uc.Create(context.Background(), tecnico, manual(5))
	require.NoError(t, err)
	assert.Equal(t, tecnico.ID, out.TechnicianID)
	assert.Equal(t, entity.RequestStatusPending, out.Status)
	assert.False(t, out.AISuggested)

	in := manual(5)
	in.TechnicianID = "tec-9"
	_, err = uc.Create(context.Background(), tecnico, in)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreate_MaterialInexistenteOInactivo(t *testing.T) {
	uc, _, _ := setup(t)
	in := manual(1)
	in.Materials[0].MaterialID = "no-existe"
	_, err := uc.Create(context.Background(), tecnico, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	in.Materials[0].MaterialID = "mat-x"
	_, err = uc.Create(context.Background(), tecnico, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApprove_SinOverridesApruebaLoSolicitado(t *testing.T) {
	ctx := context.Background()
	uc, _, notif := setup(t)
	notif.On("Notify", mock.Anything, mock.MatchedBy(func(n ports.Notification) bool {
		return n.Event == ports.EventRequestApproved && n.RecipientID == tecnico.ID
	})).Return(nil).Once()

	req, err := uc.Create(ctx, tecnico, manual(5))
	require.NoError(t, err)
	out, err := uc.Approve(ctx, bodeguero, req.ID, dto.ApproveRequestRequest{})
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusApproved, out.Status)
	assert.True(t, out.Materials[0].ApprovedQty.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, bodeguero.ID, out.ApprovedBy)
	require.NotNil(t, out.ApprovedAt)
	notif.AssertExpectations(t)

	_, err = uc.Approve(ctx, bodeguero, req.ID, dto.ApproveRequestRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	out, err = uc.Deliver(ctx, bodeguero, req.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusDelivered, out.Status)
}

func TestApprove_ConOverride(t *testing.T) {
	ctx := context.Background()
	uc, _, notif := setup(t)
	notif.On("Notify", mock.Anything, mock.Anything).Return(nil)

	req, err := uc.Create(ctx, tecnico, manual(5))
	require.NoError(t, err)
	out, err := uc.Approve(ctx, analista, req.ID, dto.ApproveRequestRequest{
		Materials: []dto.ApprovalLine{{MaterialID: "mat-m", ApprovedQty: decimal.NewFromInt(3)}},
	})
	require.NoError(t, err)
	assert.True(t, out.Materials[0].ApprovedQty.Equal(decimal.NewFromInt(3)))
}

func TestReject_RequiereMotivoYNotifica(t *testing.T) {
	ctx := context.Background()
	uc, _, notif := setup(t)
	notif.On("Notify", mock.Anything, mock.MatchedBy(func(n ports.Notification) bool {
		return n.Event == ports.EventRequestRejected
	})).Return(nil).Once()

	req, err := uc.Create(ctx, tecnico, manual(2))
	require.NoError(t, err)

	_, err = uc.Reject(ctx, bodeguero, req.ID, dto.RejectRequestRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.Reject(ctx, bodeguero, req.ID, dto.RejectRequestRequest{Reason: "sin presupuesto"})
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusRejected, out.Status)
	assert.Equal(t, "sin presupuesto", out.RejectionReason)

	_, err = uc.Deliver(ctx, bodeguero, req.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState, "una solicitud rechazada no se entrega")
	notif.AssertExpectations(t)
}

func TestDeliver_TecnicoNoPuede(t *testing.T) {
	uc, _, _ := setup(t)
	_, err := uc.Deliver(context.Background(), tecnico, "cualquiera")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreateFromSuggestions(t *testing.T) {
	ctx := context.Background()
	uc, sug, _ := setup(t)
	all := []dto.MaterialSuggestionDTO{
		{MaterialID: "mat-m", SuggestedQty: decimal.NewFromInt(6), AverageQty: 5, Confidence: 0.76, TotalJobs: 5, Available: true},
		{MaterialID: "mat-x", SuggestedQty: decimal.NewFromInt(2), Confidence: 0.9, TotalJobs: 9},
	}
	sug.On("Suggest", mock.Anything, "instalacion", (*float64)(nil)).Return(all, nil)
	sug.On("Qualified", all).Return(all[:1])

	out, err := uc.CreateFromSuggestions(ctx, tecnico, dto.SuggestedRequestRequest{JobType: "instalacion"})
	require.NoError(t, err)
	assert.True(t, out.AISuggested)
	require.Len(t, out.Materials, 1)
	assert.True(t, out.Materials[0].RequestedQty.Equal(decimal.NewFromInt(6)))
	assert.Equal(t, "instalacion", out.Materials[0].EstimatedJobType)
	sug.AssertExpectations(t)
}

func TestCreateFromSuggestions_SinSugerenciasAptas(t *testing.T) {
	uc, sug, _ := setup(t)
	sug.On("Suggest", mock.Anything, "poda", (*float64)(nil)).Return([]dto.MaterialSuggestionDTO{}, nil)
	sug.On("Qualified", []dto.MaterialSuggestionDTO{}).Return([]dto.MaterialSuggestionDTO{})

	_, err := uc.CreateFromSuggestions(context.Background(), tecnico, dto.SuggestedRequestRequest{JobType: "poda"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestList_TecnicoSoloVeLasSuyas(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := setup(t)
	_, err := uc.Create(ctx, tecnico, manual(1))
	require.NoError(t, err)
	in := manual(1)
	in.TechnicianID = "tec-2"
	_, err = uc.Create(ctx, bodeguero, in)
	require.NoError(t, err)

	list, err := uc.List(ctx, tecnico, dto.RequestQuery{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, tecnico.ID, list.Items[0].TechnicianID)

	list, err = uc.List(ctx, bodeguero, dto.RequestQuery{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
}
