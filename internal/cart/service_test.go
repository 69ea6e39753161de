package cart

import (
	"context"
	"errors"
	"sync"
	"testing"

	"sutra-be/internal/metrics"
	"sutra-be/internal/product"
	"sutra-be/internal/storage"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Load(ctx context.Context, sessionID string) ([]LineItem, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]LineItem), args.Error(1)
}

func (m *MockRepository) Save(ctx context.Context, sessionID string, items []LineItem) error {
	args := m.Called(ctx, sessionID, items)
	return args.Error(0)
}

// MockCatalog is a mock for the product catalog
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) GetProductByID(ctx context.Context, id string) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockCatalog) GetProductBySlug(ctx context.Context, slug string) (*product.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockCatalog) List(ctx context.Context, opts product.ListOptions) (*product.ListResult, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.ListResult), args.Error(1)
}

func TestService_Get(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, nil, nil)
		ctx := context.Background()

		mockRepo.On("Load", ctx, "s1").Return([]LineItem{
			{ProductID: "1", VariantSKU: "ACP-250", Price: 12.99, Quantity: 3, Weight: "250g"},
		}, nil)

		sum, err := svc.Get(ctx, "s1")

		require.NoError(t, err)
		assert.Len(t, sum.Items, 1)
		assert.InDelta(t, 38.97, sum.Total, 1e-9)
		assert.Equal(t, 3, sum.ItemCount)
		mockRepo.AssertExpectations(t)
	})

	t.Run("SessionRequired", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, nil, nil)

		sum, err := svc.Get(context.Background(), "  ")

		assert.ErrorIs(t, err, ErrSessionRequired)
		assert.Nil(t, sum)
		mockRepo.AssertNotCalled(t, "Load", mock.Anything, mock.Anything)
	})
}

func TestService_Add(t *testing.T) {
	p := chilliPaste()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		reg := prometheus.NewRegistry()
		svc := NewService(mockRepo, nil, metrics.NewStorefront(reg))
		ctx := context.Background()

		mockRepo.On("Load", ctx, "s1").Return([]LineItem{}, nil)
		mockRepo.On("Save", ctx, "s1", mock.MatchedBy(func(items []LineItem) bool {
			return len(items) == 1 && items[0].Key() == "ACP-250" && items[0].Quantity == 2
		})).Return(nil)

		sum, err := svc.Add(ctx, "s1", p, 2, &p.Variants[1])

		require.NoError(t, err)
		assert.Equal(t, 2, sum.ItemCount)
		assert.InDelta(t, 25.98, sum.Total, 1e-9)
		mockRepo.AssertExpectations(t)
	})

	t.Run("NoOpSkipsSave", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, nil, nil)
		ctx := context.Background()

		mockRepo.On("Load", ctx, "s1").Return([]LineItem{}, nil)

		sum, err := svc.Add(ctx, "s1", p, 0, &p.Variants[1])

		require.NoError(t, err)
		assert.Empty(t, sum.Items)
		mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("SaveError", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, nil, nil)
		ctx := context.Background()
		saveErr := errors.New("disk full")

		mockRepo.On("Load", ctx, "s1").Return([]LineItem{}, nil)
		mockRepo.On("Save", ctx, "s1", mock.Anything).Return(saveErr)

		sum, err := svc.Add(ctx, "s1", p, 1, &p.Variants[0])

		assert.ErrorIs(t, err, saveErr)
		assert.Nil(t, sum)
	})
}

func TestService_AddBySelection(t *testing.T) {
	p := chilliPaste()

	t.Run("DefaultVariant", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockCatalog := new(MockCatalog)
		svc := NewService(mockRepo, mockCatalog, nil)
		ctx := context.Background()

		mockCatalog.On("GetProductByID", ctx, "1").Return(&p, nil)
		mockRepo.On("Load", ctx, "s1").Return([]LineItem{}, nil)
		mockRepo.On("Save", ctx, "s1", mock.MatchedBy(func(items []LineItem) bool {
			return len(items) == 1 && items[0].VariantSKU == "ACP-250"
		})).Return(nil)

		sum, err := svc.AddBySelection(ctx, "s1", "1", "", 1)

		require.NoError(t, err)
		assert.Equal(t, 1, sum.ItemCount)
		mockCatalog.AssertExpectations(t)
		mockRepo.AssertExpectations(t)
	})

	t.Run("UnknownSelectionIsNoOp", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockCatalog := new(MockCatalog)
		svc := NewService(mockRepo, mockCatalog, nil)
		ctx := context.Background()

		mockCatalog.On("GetProductByID", ctx, "1").Return(&p, nil)
		mockRepo.On("Load", ctx, "s1").Return([]LineItem{}, nil)

		sum, err := svc.AddBySelection(ctx, "s1", "1", "2kg", 1)

		require.NoError(t, err)
		assert.Empty(t, sum.Items)
		mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		mockCatalog := new(MockCatalog)
		svc := NewService(new(MockRepository), mockCatalog, nil)
		ctx := context.Background()

		mockCatalog.On("GetProductByID", ctx, "99").Return(nil, product.ErrProductNotFound)

		sum, err := svc.AddBySelection(ctx, "s1", "99", "", 1)

		assert.ErrorIs(t, err, product.ErrProductNotFound)
		assert.Nil(t, sum)
	})
}

func TestService_UpdateAndRemove(t *testing.T) {
	stored := func() []LineItem {
		return []LineItem{
			{ProductID: "A", VariantSKU: "A-100", Price: 5, Quantity: 3, Weight: "100g"},
			{ProductID: "A", VariantSKU: "A-250", Price: 11, Quantity: 1, Weight: "250g"},
		}
	}

	t.Run("UpdateToZeroRemoves", func(t *testing.T) {
		mockRepo := new(MockRepository)
		reg := prometheus.NewRegistry()
		m := metrics.NewStorefront(reg)
		svc := NewService(mockRepo, nil, m)
		ctx := context.Background()

		mockRepo.On("Load", ctx, "s1").Return(stored(), nil)
		mockRepo.On("Save", ctx, "s1", []LineItem{
			{ProductID: "A", VariantSKU: "A-250", Price: 11, Quantity: 1, Weight: "250g"},
		}).Return(nil)

		sum, err := svc.UpdateQuantity(ctx, "s1", "A", 0, "A-100")

		require.NoError(t, err)
		require.Len(t, sum.Items, 1)
		assert.Equal(t, "A-250", sum.Items[0].VariantSKU)
		mockRepo.AssertExpectations(t)

		n, err := testutil.GatherAndCount(reg, "sutra_cart_mutations_total")
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("Remove", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, nil, nil)
		ctx := context.Background()

		mockRepo.On("Load", ctx, "s1").Return(stored(), nil)
		mockRepo.On("Save", ctx, "s1", mock.MatchedBy(func(items []LineItem) bool {
			return len(items) == 1 && items[0].VariantSKU == "A-100"
		})).Return(nil)

		sum, err := svc.RemoveByID(ctx, "s1", "A", "A-250")

		require.NoError(t, err)
		assert.Equal(t, 3, sum.ItemCount)
		mockRepo.AssertExpectations(t)
	})
}

func TestService_LoadFailureAbortsMutation(t *testing.T) {
	ctx := context.Background()
	a := productA()

	t.Run("Mutation", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, nil, nil)

		mockRepo.On("Load", ctx, "s1").Return(nil, ErrFailedLoadCart)

		sum, err := svc.Add(ctx, "s1", a, 1, &a.Variants[0])

		assert.ErrorIs(t, err, ErrFailedLoadCart)
		assert.Nil(t, sum)
		mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Get", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, nil, nil)

		mockRepo.On("Load", ctx, "s1").Return(nil, ErrFailedLoadCart)

		_, err := svc.Get(ctx, "s1")
		assert.ErrorIs(t, err, ErrFailedLoadCart)
	})

	t.Run("StoredCartSurvivesFailedRead", func(t *testing.T) {
		store := &flakyStore{MemoryStore: storage.NewMemoryStore()}
		svc := NewService(NewRepository(store), nil, nil)

		_, err := svc.Add(ctx, "s1", a, 2, &a.Variants[0])
		require.NoError(t, err)

		store.failNextGet()
		_, err = svc.Add(ctx, "s1", a, 1, &a.Variants[1])
		require.ErrorIs(t, err, ErrFailedLoadCart)

		sum, err := svc.Get(ctx, "s1")
		require.NoError(t, err)
		require.Len(t, sum.Items, 1)
		assert.Equal(t, 2, sum.Items[0].Quantity)
	})
}

// flakyStore fails the next Get after failNextGet is called.
type flakyStore struct {
	*storage.MemoryStore
	mu   sync.Mutex
	fail bool
}

func (s *flakyStore) failNextGet() {
	s.mu.Lock()
	s.fail = true
	s.mu.Unlock()
}

func (s *flakyStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	fail := s.fail
	s.fail = false
	s.mu.Unlock()
	if fail {
		return nil, errors.New("i/o timeout")
	}
	return s.MemoryStore.Get(ctx, key)
}

func TestService_ClearTotalCount(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewRepository(storage.NewMemoryStore()), nil, nil)
	a := productA()

	_, err := svc.Add(ctx, "s1", a, 2, &a.Variants[0])
	require.NoError(t, err)
	_, err = svc.Add(ctx, "s1", a, 1, &a.Variants[1])
	require.NoError(t, err)

	total, err := svc.Total(ctx, "s1")
	require.NoError(t, err)
	assert.InDelta(t, 21.00, total, 1e-9)

	count, err := svc.ItemCount(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	require.NoError(t, svc.Clear(ctx, "s1"))
	count, err = svc.ItemCount(ctx, "s1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestService_ConcurrentAddsAreSerialized(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewRepository(storage.NewMemoryStore()), nil, nil)
	a := productA()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Add(ctx, "s1", a, 1, &a.Variants[0])
		}()
	}
	wg.Wait()

	sum, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, sum.Items, 1)
	assert.Equal(t, 20, sum.Items[0].Quantity)
}
