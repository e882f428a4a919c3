package handlers_test

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"draftflow/internal/domain"
	"draftflow/internal/http/handlers"
	"draftflow/internal/http/httpapi"
	"draftflow/internal/providers/copy"
)

// In-memory repositories for handler tests. Maps plus insertion-order slices
// keep List output deterministic.

type fakeProducts struct {
	order []string
	items map[string]domain.Product
}

func newFakeProducts() *fakeProducts {
	return &fakeProducts{items: make(map[string]domain.Product)}
}

func (f *fakeProducts) Upsert(_ context.Context, p *domain.Product) error {
	if _, ok := f.items[p.ID]; !ok {
		f.order = append(f.order, p.ID)
	}
	f.items[p.ID] = *p
	return nil
}

func (f *fakeProducts) GetByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := f.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (f *fakeProducts) ListByIDs(_ context.Context, ids []string) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		p, ok := f.items[id]
		if !ok {
			return nil, domain.ErrNotFound
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProducts) List(_ context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.items[id])
	}
	return out, nil
}

func (f *fakeProducts) Delete(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeProducts) Clear(context.Context) error {
	f.items = make(map[string]domain.Product)
	f.order = nil
	return nil
}

type fakeDrafts struct {
	order []string
	items map[string]domain.DraftResult
}

func newFakeDrafts() *fakeDrafts {
	return &fakeDrafts{items: make(map[string]domain.DraftResult)}
}

func (f *fakeDrafts) SaveAll(_ context.Context, drafts []domain.DraftResult) error {
	for _, d := range drafts {
		if _, ok := f.items[d.ID]; !ok {
			f.order = append(f.order, d.ID)
		}
		f.items[d.ID] = d
	}
	return nil
}

func (f *fakeDrafts) GetByID(_ context.Context, id string) (*domain.DraftResult, error) {
	d, ok := f.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &d, nil
}

func (f *fakeDrafts) ListByJobID(_ context.Context, jobID string) ([]domain.DraftResult, error) {
	var out []domain.DraftResult
	for _, id := range f.order {
		if f.items[id].JobID == jobID {
			out = append(out, f.items[id])
		}
	}
	return out, nil
}

func (f *fakeDrafts) List(_ context.Context) ([]domain.DraftResult, error) {
	out := make([]domain.DraftResult, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.items[id])
	}
	return out, nil
}

func (f *fakeDrafts) ListSelected(_ context.Context) ([]domain.DraftResult, error) {
	var out []domain.DraftResult
	for _, id := range f.order {
		if f.items[id].Selected {
			out = append(out, f.items[id])
		}
	}
	return out, nil
}

func (f *fakeDrafts) SetSelected(_ context.Context, id string, selected bool) error {
	d, ok := f.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	d.Selected = selected
	f.items[id] = d
	return nil
}

func (f *fakeDrafts) Clear(context.Context) error {
	f.items = make(map[string]domain.DraftResult)
	f.order = nil
	return nil
}

type fakeTemplates struct {
	order []string
	items map[string]domain.Template
}

func newFakeTemplates() *fakeTemplates {
	return &fakeTemplates{items: make(map[string]domain.Template)}
}

func (f *fakeTemplates) Create(_ context.Context, t *domain.Template) error {
	if _, ok := f.items[t.ID]; !ok {
		f.order = append(f.order, t.ID)
	}
	f.items[t.ID] = *t
	return nil
}

func (f *fakeTemplates) GetByID(_ context.Context, id string) (*domain.Template, error) {
	t, ok := f.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (f *fakeTemplates) List(_ context.Context) ([]domain.Template, error) {
	out := make([]domain.Template, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.items[id])
	}
	return out, nil
}

func (f *fakeTemplates) IncrementUsedCount(_ context.Context, id string) error {
	t, ok := f.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	t.UsedCount++
	f.items[id] = t
	return nil
}

func (f *fakeTemplates) Delete(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeJobs struct {
	order []string
	items map[string]domain.DraftJob
}

func newFakeJobs() *fakeJobs {
	return &fakeJobs{items: make(map[string]domain.DraftJob)}
}

func (f *fakeJobs) Create(_ context.Context, j *domain.DraftJob) error {
	if _, ok := f.items[j.ID]; !ok {
		f.order = append(f.order, j.ID)
	}
	f.items[j.ID] = *j
	return nil
}

func (f *fakeJobs) GetByID(_ context.Context, id string) (*domain.DraftJob, error) {
	j, ok := f.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &j, nil
}

func (f *fakeJobs) ClaimNext(_ context.Context) (*domain.DraftJob, error) {
	for _, id := range f.order {
		j := f.items[id]
		if j.Status == domain.JobStatusQueued {
			j.Status = domain.JobStatusRunning
			f.items[id] = j
			return &j, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeJobs) UpdateProgress(_ context.Context, id string, completed, total int) error {
	j, ok := f.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	j.Completed, j.Total = completed, total
	f.items[id] = j
	return nil
}

func (f *fakeJobs) MarkFinished(_ context.Context, id string, status domain.JobStatus, errMsg string) error {
	j, ok := f.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	j.Status, j.ErrorMessage = status, errMsg
	f.items[id] = j
	return nil
}

type testEnv struct {
	app       *handlers.App
	products  *fakeProducts
	drafts    *fakeDrafts
	templates *fakeTemplates
	jobs      *fakeJobs
	handler   http.Handler
}

func newTestEnv() *testEnv {
	env := &testEnv{
		products:  newFakeProducts(),
		drafts:    newFakeDrafts(),
		templates: newFakeTemplates(),
		jobs:      newFakeJobs(),
	}
	env.app = handlers.NewApp(zerolog.Nop(), env.products, env.drafts, env.templates, env.jobs, copy.NewStaticEnhancer())
	env.handler = httpapi.NewRouter(env.app, httpapi.RouterOptions{Logger: zerolog.Nop(), DefaultLocale: "zh"})
	return env
}
