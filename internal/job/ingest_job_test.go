package job

import (
	"SMMBoard/internal/api/config"
	"SMMBoard/internal/api/dto"
	"SMMBoard/internal/pkg/consts"
	"SMMBoard/internal/pkg/mongo"
	"SMMBoard/internal/service"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockIngestService struct {
	mock.Mock
	release chan struct{}
	started chan struct{}
}

func (m *MockIngestService) RunPass(ctx context.Context) (*dto.IngestResultDTO, error) {
	args := m.Called(ctx)
	if m.started != nil {
		m.started <- struct{}{}
	}
	if m.release != nil {
		select {
		case <-m.release:
		case <-ctx.Done():
		}
	}
	return args.Get(0).(*dto.IngestResultDTO), args.Error(1)
}

func (m *MockIngestService) IngestAccount(ctx context.Context, account *mongo.SocialAccountModel, n int) *dto.AccountIngestDTO {
	return m.Called(ctx, account, n).Get(0).(*dto.AccountIngestDTO)
}

func (m *MockIngestService) IngestAccountByID(ctx context.Context, id string) (*dto.AccountIngestDTO, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AccountIngestDTO), args.Error(1)
}

func TestIngestJob_SingleFlight(t *testing.T) {
	svc := &MockIngestService{release: make(chan struct{}), started: make(chan struct{}, 2)}
	svc.On("RunPass", mock.Anything).Return(&dto.IngestResultDTO{}, nil)
	j := NewIngestJob(svc, config.IngestConfig{})

	traceID, err := j.Trigger(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(traceID, consts.TraceIngestManualPrefix))

	select {
	case <-svc.started:
	case <-time.After(time.Second):
		t.Fatal("pass did not start")
	}
	assert.True(t, j.Running())

	// overlapping cron tick is skipped
	j.Run()
	_, err = j.Trigger(context.Background())
	assert.ErrorIs(t, err, service.ErrIngestRunning)
	_, err = j.RunAccount(context.Background(), "abc")
	assert.ErrorIs(t, err, service.ErrIngestRunning)

	close(svc.release)
	j.Wait()
	assert.False(t, j.Running())
	svc.AssertNumberOfCalls(t, "RunPass", 1)

	j.Run()
	svc.AssertNumberOfCalls(t, "RunPass", 2)
	svc.AssertNotCalled(t, "IngestAccountByID", mock.Anything, mock.Anything)
}

func TestIngestJob_RunAccount(t *testing.T) {
	svc := &MockIngestService{}
	svc.On("IngestAccountByID", mock.Anything, "abc").Return(&dto.AccountIngestDTO{Account: "Acme", Created: 2}, nil)
	j := NewIngestJob(svc, config.IngestConfig{})

	res, err := j.RunAccount(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.False(t, j.Running())
}

func TestIngestJob_PassDeadline(t *testing.T) {
	svc := &MockIngestService{release: make(chan struct{})}
	svc.On("RunPass", mock.Anything).Return(&dto.IngestResultDTO{}, nil)
	j := NewIngestJob(svc, config.IngestConfig{PassDeadline: 50 * time.Millisecond})

	done := make(chan struct{})
	go func() {
		j.Run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("pass was not bounded by its deadline")
	}
}

func TestIngestJob_StopCancelsPass(t *testing.T) {
	svc := &MockIngestService{release: make(chan struct{}), started: make(chan struct{}, 1)}
	svc.On("RunPass", mock.Anything).Return(&dto.IngestResultDTO{}, nil)
	j := NewIngestJob(svc, config.IngestConfig{})

	_, err := j.Trigger(context.Background())
	require.NoError(t, err)
	<-svc.started

	j.Stop()
	j.Wait()
	assert.False(t, j.Running())
}
