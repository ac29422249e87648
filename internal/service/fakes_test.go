package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"streamflix/internal/models"
	"streamflix/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Fakes en memoria para testear los servicios sin Mongo.

// ====== videos ======

type fakeVideoStore struct {
	videos map[int]*models.VideoDoc
	nextID int

	incViews []int
}

func newFakeVideoStore(vs ...*models.VideoDoc) *fakeVideoStore {
	s := &fakeVideoStore{videos: make(map[int]*models.VideoDoc), nextID: 1}
	for _, v := range vs {
		cp := *v
		s.videos[v.VideoID] = &cp
		if v.VideoID >= s.nextID {
			s.nextID = v.VideoID + 1
		}
	}
	return s
}

func (s *fakeVideoStore) GetByID(_ context.Context, videoID int) (*models.VideoDoc, error) {
	v, ok := s.videos[videoID]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (s *fakeVideoStore) GetByIDs(_ context.Context, videoIDs []int) ([]models.VideoDoc, error) {
	var out []models.VideoDoc
	for _, id := range videoIDs {
		if v, ok := s.videos[id]; ok {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (s *fakeVideoStore) FindByTitleYear(_ context.Context, title string, year *int) (*models.VideoDoc, error) {
	for _, v := range s.videos {
		if v.Title != title {
			continue
		}
		if (v.Year == nil) != (year == nil) {
			continue
		}
		if year != nil && *v.Year != *year {
			continue
		}
		cp := *v
		return &cp, nil
	}
	return nil, nil
}

func (s *fakeVideoStore) GetNextVideoID(_ context.Context) (int, error) {
	id := s.nextID
	s.nextID++
	return id, nil
}

func (s *fakeVideoStore) Insert(_ context.Context, v *models.VideoDoc) error {
	cp := *v
	s.videos[v.VideoID] = &cp
	return nil
}

func (s *fakeVideoStore) Update(_ context.Context, v *models.VideoDoc) error {
	if _, ok := s.videos[v.VideoID]; !ok {
		return fmt.Errorf("video %d not found", v.VideoID)
	}
	cp := *v
	s.videos[v.VideoID] = &cp
	return nil
}

func (s *fakeVideoStore) sorted() []models.VideoDoc {
	ids := make([]int, 0, len(s.videos))
	for id := range s.videos {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]models.VideoDoc, 0, len(ids))
	for _, id := range ids {
		out = append(out, *s.videos[id])
	}
	return out
}

func inSet(set []string, val string) bool {
	for _, s := range set {
		if s == val {
			return true
		}
	}
	return false
}

func (s *fakeVideoStore) Search(_ context.Context, p repository.SearchParams) ([]models.VideoDoc, error) {
	var out []models.VideoDoc
	for _, v := range s.sorted() {
		if p.Genre != "" && !inSet(v.Genres, p.Genre) {
			continue
		}
		if len(p.MaxMaturity) > 0 && !inSet(p.MaxMaturity, v.MaturityRating) {
			continue
		}
		if p.OnlyReady && (v.Asset == nil || v.Asset.Status != models.AssetStatusReady) {
			continue
		}
		out = append(out, v)
		if p.Limit > 0 && len(out) >= p.Limit {
			break
		}
	}
	return out, nil
}

func (s *fakeVideoStore) Top(_ context.Context, metric string, maxMaturity []string, limit int) ([]models.VideoDoc, error) {
	var out []models.VideoDoc
	for _, v := range s.sorted() {
		if len(maxMaturity) > 0 && !inSet(maxMaturity, v.MaturityRating) {
			continue
		}
		out = append(out, v)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if metric == "liked" {
			li, lj := 0, 0
			if out[i].RatingStats != nil {
				li = out[i].RatingStats.Likes
			}
			if out[j].RatingStats != nil {
				lj = out[j].RatingStats.Likes
			}
			return li > lj
		}
		ci, cj := 0, 0
		if out[i].ViewStats != nil {
			ci = out[i].ViewStats.Count
		}
		if out[j].ViewStats != nil {
			cj = out[j].ViewStats.Count
		}
		return ci > cj
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeVideoStore) UpdateAsset(_ context.Context, videoID int, asset *models.AssetInfo) error {
	v, ok := s.videos[videoID]
	if !ok {
		return fmt.Errorf("video %d not found", videoID)
	}
	cp := *asset
	v.Asset = &cp
	return nil
}

func (s *fakeVideoStore) IncView(_ context.Context, videoID int, nowRFC3339 string) error {
	v, ok := s.videos[videoID]
	if !ok {
		return fmt.Errorf("video %d not found", videoID)
	}
	if v.ViewStats == nil {
		v.ViewStats = &models.ViewStats{}
	}
	v.ViewStats.Count++
	v.ViewStats.LastViewedAt = nowRFC3339
	s.incViews = append(s.incViews, videoID)
	return nil
}

func (s *fakeVideoStore) Count(_ context.Context) (int64, error) {
	return int64(len(s.videos)), nil
}

func (s *fakeVideoStore) CountByAssetStatus(_ context.Context, status string) (int64, error) {
	var n int64
	for _, v := range s.videos {
		st := models.AssetStatusNone
		if v.Asset != nil {
			st = v.Asset.Status
		}
		if st == status {
			n++
		}
	}
	return n, nil
}

func (s *fakeVideoStore) ListByAssetStatus(_ context.Context, statuses []string, limit int) ([]models.VideoDoc, error) {
	var out []models.VideoDoc
	for _, v := range s.sorted() {
		if v.Asset == nil || !inSet(statuses, v.Asset.Status) {
			continue
		}
		out = append(out, v)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (s *fakeVideoStore) IncRatingCounters(_ context.Context, videoID, likesDelta, dislikesDelta int) error {
	v, ok := s.videos[videoID]
	if !ok {
		return fmt.Errorf("video %d not found", videoID)
	}
	if v.RatingStats == nil {
		v.RatingStats = &models.RatingStats{}
	}
	v.RatingStats.Likes += likesDelta
	v.RatingStats.Dislikes += dislikesDelta
	return nil
}

// ====== usuarios ======

type fakeUserStore struct {
	users  map[int]*models.UserDoc
	nextID int
}

func newFakeUserStore(us ...*models.UserDoc) *fakeUserStore {
	s := &fakeUserStore{users: make(map[int]*models.UserDoc), nextID: 1}
	for _, u := range us {
		cp := *u
		s.users[u.UserID] = &cp
		if u.UserID >= s.nextID {
			s.nextID = u.UserID + 1
		}
	}
	return s
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.UserDoc, error) {
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) FindByID(_ context.Context, userID int) (*models.UserDoc, error) {
	u, ok := s.users[userID]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) GetNextUserID(_ context.Context) (int, error) {
	id := s.nextID
	s.nextID++
	return id, nil
}

func (s *fakeUserStore) Insert(_ context.Context, u *models.UserDoc) error {
	cp := *u
	s.users[u.UserID] = &cp
	return nil
}

func (s *fakeUserStore) UpdateByID(_ context.Context, userID int, update bson.M) error {
	u, ok := s.users[userID]
	if !ok {
		return fmt.Errorf("user not found")
	}
	if v, ok := update["email"].(string); ok {
		u.Email = v
	}
	if v, ok := update["role"].(string); ok {
		u.Role = v
	}
	if v, ok := update["passwordHash"].(string); ok {
		u.PasswordHash = v
	}
	if v, ok := update["plan"].(string); ok {
		u.Plan = v
	}
	if v, ok := update["updatedAt"].(string); ok {
		u.UpdatedAt = v
	}
	return nil
}

func (s *fakeUserStore) Search(_ context.Context, role, q string, limit, offset int) ([]models.UserDoc, error) {
	var out []models.UserDoc
	for _, u := range s.users {
		if role != "" && u.Role != role {
			continue
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

// ====== watch ======

type watchKey struct {
	profile primitive.ObjectID
	video   int
}

type fakeWatchStore struct {
	entries map[watchKey]*models.WatchEntryDoc
}

func newFakeWatchStore() *fakeWatchStore {
	return &fakeWatchStore{entries: make(map[watchKey]*models.WatchEntryDoc)}
}

func (s *fakeWatchStore) GetOne(_ context.Context, profileID primitive.ObjectID, videoID int) (*models.WatchEntryDoc, error) {
	e, ok := s.entries[watchKey{profileID, videoID}]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (s *fakeWatchStore) UpsertProgress(_ context.Context, profileID primitive.ObjectID, videoID, positionSeconds int, completed bool) error {
	k := watchKey{profileID, videoID}
	e, ok := s.entries[k]
	if !ok {
		e = &models.WatchEntryDoc{ProfileID: profileID, VideoID: videoID}
		s.entries[k] = e
	}
	e.PositionSeconds = positionSeconds
	e.Completed = completed
	e.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *fakeWatchStore) SetInList(_ context.Context, profileID primitive.ObjectID, videoID int, inList bool) error {
	k := watchKey{profileID, videoID}
	e, ok := s.entries[k]
	if !ok {
		e = &models.WatchEntryDoc{ProfileID: profileID, VideoID: videoID}
		s.entries[k] = e
	}
	e.InList = inList
	e.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *fakeWatchStore) byProfile(profileID primitive.ObjectID) []models.WatchEntryDoc {
	var out []models.WatchEntryDoc
	for k, e := range s.entries {
		if k.profile == profileID {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VideoID < out[j].VideoID })
	return out
}

func (s *fakeWatchStore) ContinueWatching(_ context.Context, profileID primitive.ObjectID, limit int) ([]models.WatchEntryDoc, error) {
	var out []models.WatchEntryDoc
	for _, e := range s.byProfile(profileID) {
		if e.Completed || e.PositionSeconds <= 0 {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (s *fakeWatchStore) ListInList(_ context.Context, profileID primitive.ObjectID, limit int) ([]models.WatchEntryDoc, error) {
	var out []models.WatchEntryDoc
	for _, e := range s.byProfile(profileID) {
		if !e.InList {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (s *fakeWatchStore) GetAllByProfile(_ context.Context, profileID primitive.ObjectID) ([]models.WatchEntryDoc, error) {
	return s.byProfile(profileID), nil
}

// ====== ratings ======

type fakeRatingStore struct {
	ratings map[watchKey]*models.RatingDoc
}

func newFakeRatingStore() *fakeRatingStore {
	return &fakeRatingStore{ratings: make(map[watchKey]*models.RatingDoc)}
}

func (s *fakeRatingStore) GetOne(_ context.Context, profileID primitive.ObjectID, videoID int) (*models.RatingDoc, error) {
	r, ok := s.ratings[watchKey{profileID, videoID}]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (s *fakeRatingStore) UpsertRating(_ context.Context, profileID primitive.ObjectID, videoID int, value string) error {
	s.ratings[watchKey{profileID, videoID}] = &models.RatingDoc{
		ProfileID: profileID,
		VideoID:   videoID,
		Value:     value,
		Timestamp: time.Now().Unix(),
	}
	return nil
}

func (s *fakeRatingStore) byProfile(profileID primitive.ObjectID) []models.RatingDoc {
	var out []models.RatingDoc
	for k, r := range s.ratings {
		if k.profile == profileID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VideoID < out[j].VideoID })
	return out
}

func (s *fakeRatingStore) GetByProfile(_ context.Context, profileID primitive.ObjectID, limit, offset int) ([]models.RatingDoc, error) {
	all := s.byProfile(profileID)
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (s *fakeRatingStore) GetAllByProfile(_ context.Context, profileID primitive.ObjectID) ([]models.RatingDoc, error) {
	return s.byProfile(profileID), nil
}

// ====== perfiles ======

type fakeProfileStore struct {
	profiles map[primitive.ObjectID]*models.ProfileDoc
}

func newFakeProfileStore(ps ...*models.ProfileDoc) *fakeProfileStore {
	s := &fakeProfileStore{profiles: make(map[primitive.ObjectID]*models.ProfileDoc)}
	for _, p := range ps {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		cp := *p
		s.profiles[p.ID] = &cp
	}
	return s
}

func (s *fakeProfileStore) Insert(_ context.Context, p *models.ProfileDoc) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	cp := *p
	cp.ID = id
	s.profiles[id] = &cp
	return id, nil
}

func (s *fakeProfileStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.ProfileDoc, error) {
	p, ok := s.profiles[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (s *fakeProfileStore) ListByUser(_ context.Context, userID int) ([]models.ProfileDoc, error) {
	var out []models.ProfileDoc
	for _, p := range s.profiles {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *fakeProfileStore) CountByUser(ctx context.Context, userID int) (int64, error) {
	ps, _ := s.ListByUser(ctx, userID)
	return int64(len(ps)), nil
}

func (s *fakeProfileStore) UpdateByID(_ context.Context, id primitive.ObjectID, update bson.M) error {
	p, ok := s.profiles[id]
	if !ok {
		return fmt.Errorf("profile not found")
	}
	if v, ok := update["name"].(string); ok {
		p.Name = v
	}
	if v, ok := update["avatarColor"].(string); ok {
		p.AvatarColor = v
	}
	if v, ok := update["kids"].(bool); ok {
		p.Kids = v
	}
	if v, ok := update["maturityLimit"].(string); ok {
		p.MaturityLimit = v
	}
	if v, ok := update["preferredGenres"].([]string); ok {
		p.PreferredGenres = v
	}
	if v, ok := update["updatedAt"].(time.Time); ok {
		p.UpdatedAt = v
	}
	return nil
}

func (s *fakeProfileStore) DeleteByID(_ context.Context, id primitive.ObjectID) error {
	delete(s.profiles, id)
	return nil
}

// ====== categorías ======

type fakeCategoryStore struct {
	cats map[string]*models.CategoryDoc
}

func newFakeCategoryStore(cs ...*models.CategoryDoc) *fakeCategoryStore {
	s := &fakeCategoryStore{cats: make(map[string]*models.CategoryDoc)}
	for _, c := range cs {
		cp := *c
		s.cats[c.Slug] = &cp
	}
	return s
}

func (s *fakeCategoryStore) GetBySlug(_ context.Context, slug string) (*models.CategoryDoc, error) {
	c, ok := s.cats[slug]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (s *fakeCategoryStore) ListOrdered(_ context.Context) ([]models.CategoryDoc, error) {
	var out []models.CategoryDoc
	for _, c := range s.cats {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (s *fakeCategoryStore) Upsert(_ context.Context, c *models.CategoryDoc) error {
	cp := *c
	s.cats[c.Slug] = &cp
	return nil
}

func (s *fakeCategoryStore) Delete(_ context.Context, slug string) error {
	delete(s.cats, slug)
	return nil
}

// ====== recomendaciones ======

type fakeRecStore struct {
	inserted []models.Recommendation
}

func (s *fakeRecStore) Insert(_ context.Context, rec *models.Recommendation) error {
	s.inserted = append(s.inserted, *rec)
	return nil
}

func (s *fakeRecStore) Latest(_ context.Context, profileID primitive.ObjectID, limit int) ([]models.Recommendation, error) {
	var out []models.Recommendation
	for i := len(s.inserted) - 1; i >= 0 && len(out) < limit; i-- {
		if s.inserted[i].ProfileID == profileID {
			out = append(out, s.inserted[i])
		}
	}
	return out, nil
}

// ====== pedidos de títulos ======

type fakeTitleRequestStore struct {
	requests map[primitive.ObjectID]*models.TitleRequest
}

func newFakeTitleRequestStore() *fakeTitleRequestStore {
	return &fakeTitleRequestStore{requests: make(map[primitive.ObjectID]*models.TitleRequest)}
}

func (s *fakeTitleRequestStore) Insert(_ context.Context, req *models.TitleRequest) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	cp := *req
	cp.ID = id
	s.requests[id] = &cp
	return id, nil
}

func (s *fakeTitleRequestStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.TitleRequest, error) {
	r, ok := s.requests[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (s *fakeTitleRequestStore) ListByUser(_ context.Context, userID, limit, offset int) ([]models.TitleRequest, error) {
	var out []models.TitleRequest
	for _, r := range s.requests {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *fakeTitleRequestStore) ListAll(_ context.Context, status string, limit, offset int) ([]models.TitleRequest, error) {
	var out []models.TitleRequest
	for _, r := range s.requests {
		if status != "" && r.Status != status {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (s *fakeTitleRequestStore) UpdateStatus(_ context.Context, id primitive.ObjectID, update bson.M) error {
	r, ok := s.requests[id]
	if !ok {
		return fmt.Errorf("request not found")
	}
	if v, ok := update["status"].(string); ok {
		r.Status = v
	}
	if v, ok := update["approvedVideoId"].(int); ok {
		r.ApprovedVideoID = &v
	}
	if v, ok := update["reason"].(string); ok {
		r.Reason = v
	}
	return nil
}
