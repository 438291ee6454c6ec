package localstore

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/campus-events-api/internal/models"
)

// errNotFound aborts a mutation without persisting anything
var errNotFound = errors.New("localstore: not found")

// localUsers implements repository.UserRepository over the store
type localUsers struct {
	store *Store
}

func (r *localUsers) GetBySubject(_ context.Context, subjectID string) (*models.User, error) {
	var found *models.User
	var err error
	r.store.view(func(st *State) {
		for _, u := range st.Users {
			if u.SubjectID == subjectID {
				found, err = cloneUser(u)
				return
			}
		}
	})
	return found, err
}

func (r *localUsers) Upsert(_ context.Context, user *models.User) error {
	now := time.Now().UTC()
	return r.store.mutate(func(st *State) error {
		if user.ID == "" {
			user.ID = uuid.NewString()
		}
		if user.CreatedAt.IsZero() {
			user.CreatedAt = now
		}
		user.UpdatedAt = now

		stored, err := clone(*user)
		if err != nil {
			return err
		}
		for i, u := range st.Users {
			if u.SubjectID == user.SubjectID {
				stored.ID = u.ID
				stored.CreatedAt = u.CreatedAt
				st.Users[i] = &stored
				user.ID = u.ID
				user.CreatedAt = u.CreatedAt
				return nil
			}
		}
		st.Users = append(st.Users, &stored)
		return nil
	})
}

// localProfiles implements repository.ProfileRepository over the store
type localProfiles struct {
	store *Store
}

func (r *localProfiles) GetBySubject(_ context.Context, subjectID string) (*models.Profile, error) {
	var found *models.Profile
	var err error
	r.store.view(func(st *State) {
		for _, p := range st.Profiles {
			if p.SubjectID == subjectID {
				found, err = cloneProfile(p)
				return
			}
		}
	})
	return found, err
}

func (r *localProfiles) Create(_ context.Context, profile *models.Profile) error {
	now := time.Now().UTC()
	return r.store.mutate(func(st *State) error {
		if profile.ID == "" {
			profile.ID = uuid.NewString()
		}
		profile.CreatedAt = now
		profile.UpdatedAt = now
		stored, err := clone(*profile)
		if err != nil {
			return err
		}
		st.Profiles = append(st.Profiles, &stored)
		return nil
	})
}

func (r *localProfiles) Update(_ context.Context, profile *models.Profile) error {
	profile.UpdatedAt = time.Now().UTC()
	err := r.store.mutate(func(st *State) error {
		for i, p := range st.Profiles {
			if p.SubjectID == profile.SubjectID {
				stored, err := clone(*profile)
				if err != nil {
					return err
				}
				stored.ID = p.ID
				stored.CreatedAt = p.CreatedAt
				st.Profiles[i] = &stored
				return nil
			}
		}
		return errNotFound
	})
	if errors.Is(err, errNotFound) {
		return r.Create(context.Background(), profile)
	}
	return err
}

// localEvents implements repository.EventRepository over the store
type localEvents struct {
	store *Store
}

func (r *localEvents) Create(_ context.Context, event *models.Event) error {
	return r.store.mutate(func(st *State) error {
		if event.ID == "" {
			event.ID = nextID(st)
		}
		stored, err := clone(*event)
		if err != nil {
			return err
		}
		if stored.Status == models.StatusPublished {
			st.Events = append(st.Events, &stored)
		} else {
			st.PendingEvents = append(st.PendingEvents, &stored)
		}
		return nil
	})
}

func (r *localEvents) GetByID(_ context.Context, id string) (*models.Event, error) {
	var found *models.Event
	var err error
	r.store.view(func(st *State) {
		for _, e := range append(append([]*models.Event{}, st.Events...), st.PendingEvents...) {
			if e.ID == id {
				found, err = cloneEvent(e)
				return
			}
		}
	})
	return found, err
}

func (r *localEvents) ListPublished(_ context.Context) ([]*models.Event, error) {
	var out []*models.Event
	var err error
	r.store.view(func(st *State) {
		out, err = cloneEvents(st.Events)
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *localEvents) ListPending(_ context.Context) ([]*models.Event, error) {
	var out []*models.Event
	var err error
	r.store.view(func(st *State) {
		out, err = cloneEvents(st.PendingEvents)
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	return out, nil
}

func (r *localEvents) Approve(_ context.Context, id string, by models.UserSnapshot, at time.Time) (*models.Event, error) {
	var result *models.Event
	err := r.store.mutate(func(st *State) error {
		for i, e := range st.PendingEvents {
			if e.ID != id {
				continue
			}
			if err := e.Moderation.Approve(by, at); err != nil {
				return err
			}
			st.PendingEvents = append(st.PendingEvents[:i], st.PendingEvents[i+1:]...)
			st.Events = append(st.Events, e)
			var err error
			result, err = cloneEvent(e)
			return err
		}
		return errNotFound
	})
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	return result, err
}

func (r *localEvents) Reject(_ context.Context, id string) (*models.Event, error) {
	var result *models.Event
	err := r.store.mutate(func(st *State) error {
		for i, e := range st.PendingEvents {
			if e.ID != id {
				continue
			}
			if err := e.Moderation.Reject(); err != nil {
				return err
			}
			// rejected submissions disappear from every collection
			st.PendingEvents = append(st.PendingEvents[:i], st.PendingEvents[i+1:]...)
			var err error
			result, err = cloneEvent(e)
			return err
		}
		return errNotFound
	})
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	return result, err
}

func (r *localEvents) Delete(_ context.Context, id string) (*models.Event, error) {
	var result *models.Event
	err := r.store.mutate(func(st *State) error {
		for i, e := range st.Events {
			if e.ID == id {
				st.Events = append(st.Events[:i], st.Events[i+1:]...)
				var err error
				result, err = cloneEvent(e)
				return err
			}
		}
		for i, e := range st.PendingEvents {
			if e.ID == id {
				st.PendingEvents = append(st.PendingEvents[:i], st.PendingEvents[i+1:]...)
				var err error
				result, err = cloneEvent(e)
				return err
			}
		}
		return errNotFound
	})
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	return result, err
}

// localPosts implements repository.PostRepository over the store
type localPosts struct {
	store *Store
}

func (r *localPosts) Create(_ context.Context, post *models.HackFinderPost) error {
	return r.store.mutate(func(st *State) error {
		if post.ID == "" {
			post.ID = nextID(st)
		}
		stored, err := clone(*post)
		if err != nil {
			return err
		}
		if stored.Status == models.StatusPublished {
			st.HackfinderPosts = append(st.HackfinderPosts, &stored)
		} else {
			st.PendingHackfinderPosts = append(st.PendingHackfinderPosts, &stored)
		}
		return nil
	})
}

func (r *localPosts) GetByID(_ context.Context, id string) (*models.HackFinderPost, error) {
	var found *models.HackFinderPost
	var err error
	r.store.view(func(st *State) {
		for _, p := range append(append([]*models.HackFinderPost{}, st.HackfinderPosts...), st.PendingHackfinderPosts...) {
			if p.ID == id {
				found, err = clonePost(p)
				return
			}
		}
	})
	return found, err
}

func (r *localPosts) ListPublished(_ context.Context) ([]*models.HackFinderPost, error) {
	var out []*models.HackFinderPost
	var err error
	r.store.view(func(st *State) {
		out, err = clonePosts(st.HackfinderPosts)
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *localPosts) ListPending(_ context.Context) ([]*models.HackFinderPost, error) {
	var out []*models.HackFinderPost
	var err error
	r.store.view(func(st *State) {
		out, err = clonePosts(st.PendingHackfinderPosts)
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	return out, nil
}

func (r *localPosts) Approve(_ context.Context, id string, by models.UserSnapshot, at time.Time) (*models.HackFinderPost, error) {
	var result *models.HackFinderPost
	err := r.store.mutate(func(st *State) error {
		for i, p := range st.PendingHackfinderPosts {
			if p.ID != id {
				continue
			}
			if err := p.Moderation.Approve(by, at); err != nil {
				return err
			}
			st.PendingHackfinderPosts = append(st.PendingHackfinderPosts[:i], st.PendingHackfinderPosts[i+1:]...)
			st.HackfinderPosts = append(st.HackfinderPosts, p)
			var err error
			result, err = clonePost(p)
			return err
		}
		return errNotFound
	})
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	return result, err
}

func (r *localPosts) Reject(_ context.Context, id string) (*models.HackFinderPost, error) {
	var result *models.HackFinderPost
	err := r.store.mutate(func(st *State) error {
		for i, p := range st.PendingHackfinderPosts {
			if p.ID != id {
				continue
			}
			if err := p.Moderation.Reject(); err != nil {
				return err
			}
			st.PendingHackfinderPosts = append(st.PendingHackfinderPosts[:i], st.PendingHackfinderPosts[i+1:]...)
			var err error
			result, err = clonePost(p)
			return err
		}
		return errNotFound
	})
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	return result, err
}

func (r *localPosts) Delete(_ context.Context, id string) (*models.HackFinderPost, error) {
	var result *models.HackFinderPost
	err := r.store.mutate(func(st *State) error {
		for i, p := range st.HackfinderPosts {
			if p.ID == id {
				st.HackfinderPosts = append(st.HackfinderPosts[:i], st.HackfinderPosts[i+1:]...)
				var err error
				result, err = clonePost(p)
				return err
			}
		}
		for i, p := range st.PendingHackfinderPosts {
			if p.ID == id {
				st.PendingHackfinderPosts = append(st.PendingHackfinderPosts[:i], st.PendingHackfinderPosts[i+1:]...)
				var err error
				result, err = clonePost(p)
				return err
			}
		}
		return errNotFound
	})
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	return result, err
}

// typed clone helpers

func cloneUser(u *models.User) (*models.User, error) {
	out, err := clone(*u)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func cloneProfile(p *models.Profile) (*models.Profile, error) {
	out, err := clone(*p)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func cloneEvent(e *models.Event) (*models.Event, error) {
	out, err := clone(*e)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func clonePost(p *models.HackFinderPost) (*models.HackFinderPost, error) {
	out, err := clone(*p)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func cloneEvents(events []*models.Event) ([]*models.Event, error) {
	out := make([]*models.Event, 0, len(events))
	for _, e := range events {
		copied, err := cloneEvent(e)
		if err != nil {
			return nil, err
		}
		out = append(out, copied)
	}
	return out, nil
}

func clonePosts(posts []*models.HackFinderPost) ([]*models.HackFinderPost, error) {
	out := make([]*models.HackFinderPost, 0, len(posts))
	for _, p := range posts {
		copied, err := clonePost(p)
		if err != nil {
			return nil, err
		}
		out = append(out, copied)
	}
	return out, nil
}
