package services

import (
	"context"
	"sync"

	"github.com/jaswanthhitman45/storybuilder/application/ports/outbound"
	"github.com/jaswanthhitman45/storybuilder/domain"
)

type noopLogger struct{}

func (noopLogger) Info(string)                                        {}
func (noopLogger) InfoWithFields(string, map[string]interface{})      {}
func (noopLogger) Error(error, string)                                {}
func (noopLogger) ErrorWithFields(error, string, map[string]interface{}) {}
func (noopLogger) Debug(string)                                       {}
func (noopLogger) DebugWithFields(string, map[string]interface{})     {}
func (noopLogger) Warn(string)                                        {}
func (noopLogger) WarnWithFields(string, map[string]interface{})      {}

// goDispatcher runs every task on its own goroutine, standing in for the
// ants pool.
type goDispatcher struct{}

func (goDispatcher) Submit(task func()) error {
	go task()
	return nil
}

type statusStep struct {
	status domain.VideoStatus
	err    error
}

// fakeVideoProvider walks through scripted status steps, repeating the
// last one forever.
type fakeVideoProvider struct {
	mu        sync.Mutex
	steps     []statusStep
	idx       int
	videoID   string
	createErr error
	created   []outbound.CreateVideoParams
}

func (f *fakeVideoProvider) CreateVideo(_ context.Context, params outbound.CreateVideoParams) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, params)
	if f.createErr != nil {
		return "", f.createErr
	}
	return f.videoID, nil
}

func (f *fakeVideoProvider) GetStatus(context.Context, string) (domain.VideoStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.steps) == 0 {
		return domain.VideoStatus{}, nil
	}
	step := f.steps[f.idx]
	if f.idx < len(f.steps)-1 {
		f.idx++
	}
	return step.status, step.err
}

func (f *fakeVideoProvider) ListPersonas(context.Context) ([]outbound.Persona, error) {
	return nil, nil
}

type fakeStoryGenerator struct {
	content string
	err     error
	params  []outbound.GenerateStoryParams
}

func (f *fakeStoryGenerator) Generate(_ context.Context, params outbound.GenerateStoryParams) (string, error) {
	f.params = append(f.params, params)
	return f.content, f.err
}

type fakeAudioGenerator struct {
	audio []byte
	err   error
	calls int
}

func (f *fakeAudioGenerator) Generate(context.Context, outbound.GenerateAudioParams) ([]byte, error) {
	f.calls++
	return f.audio, f.err
}

func (f *fakeAudioGenerator) ListVoices(context.Context) ([]outbound.Voice, error) {
	return nil, nil
}

// fakeAudioStore fails the first failUntil attempts, then succeeds.
type fakeAudioStore struct {
	url       string
	failUntil int
	failErr   error
	attempts  int
}

func (f *fakeAudioStore) Save(context.Context, string, []byte) (string, error) {
	f.attempts++
	if f.attempts <= f.failUntil {
		return "", f.failErr
	}
	return f.url, nil
}

type attachCall struct {
	storyID  string
	audioURL string
	marker   string
}

type fakeStoryRepo struct {
	mu           sync.Mutex
	stories      map[string]domain.Story
	attachErr    error
	attached     []attachCall
	resolveErr   error
	resolved     map[string]string
	listByAuthor []domain.Story
	listErr      error
}

func newFakeStoryRepo() *fakeStoryRepo {
	return &fakeStoryRepo{
		stories:  make(map[string]domain.Story),
		resolved: make(map[string]string),
	}
}

func (f *fakeStoryRepo) Save(_ context.Context, story domain.Story) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stories[story.ID] = story
	return nil
}

func (f *fakeStoryRepo) Get(_ context.Context, storyID string) (domain.Story, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stories[storyID], nil
}

func (f *fakeStoryRepo) ListByAuthor(context.Context, string) ([]domain.Story, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listByAuthor, f.listErr
}

func (f *fakeStoryRepo) ListPublic(context.Context, int) ([]domain.Story, error) {
	return nil, nil
}

func (f *fakeStoryRepo) AttachVideoJob(_ context.Context, storyID, audioURL, videoMarker string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attached = append(f.attached, attachCall{storyID: storyID, audioURL: audioURL, marker: videoMarker})
	return f.attachErr
}

func (f *fakeStoryRepo) ResolveVideoURL(_ context.Context, storyID, videoURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.resolveErr != nil {
		return f.resolveErr
	}
	f.resolved[storyID] = videoURL
	return nil
}

func (f *fakeStoryRepo) resolvedURL(storyID string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resolved[storyID]
}

func (f *fakeStoryRepo) IncrementViews(context.Context, string) error {
	return nil
}
