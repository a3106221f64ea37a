package service

import (
	"context"
	"time"

	"github.com/campusgo/admin-backend/internal/model"
	"github.com/campusgo/admin-backend/internal/moderation"
	"github.com/campusgo/admin-backend/internal/repository"
	"github.com/campusgo/admin-backend/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes shared across the service tests. They mirror
// the gorm implementations closely enough that the services cannot tell the
// difference, including gorm.ErrRecordNotFound on misses.

type fakeConfigRepo struct {
	cfg *model.AdminConfig
}

func (r *fakeConfigRepo) Get(ctx context.Context) (*model.AdminConfig, error) {
	if r.cfg == nil {
		return nil, gorm.ErrRecordNotFound
	}
	out := *r.cfg
	return &out, nil
}

func (r *fakeConfigRepo) Seed(ctx context.Context) error {
	if r.cfg == nil {
		def := model.DefaultAdminConfig()
		r.cfg = &def
	}
	return nil
}

func (r *fakeConfigRepo) UpdateVersioned(ctx context.Context, cfg *model.AdminConfig, expectedVersion int, updatedBy string) (*model.AdminConfig, error) {
	if r.cfg == nil {
		return nil, apperror.ErrNotFound
	}
	if r.cfg.Version != expectedVersion {
		return nil, apperror.ErrVersionConflict
	}
	next := *cfg
	next.Version = expectedVersion + 1
	next.UpdatedBy = updatedBy
	r.cfg = &next
	out := next
	return &out, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *u
	return &out, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindAll(ctx context.Context, filter repository.UserFilter, offset, limit int) ([]*model.User, int64, error) {
	var out []*model.User
	for _, u := range r.users {
		if filter.Status != "" && string(u.Status) != filter.Status {
			continue
		}
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *model.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status model.UserStatus, bannedUntil *time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Status = status
	u.BannedUntil = bannedUntil
	return nil
}

type fakePostRepo struct {
	posts map[uuid.UUID]*model.Post

	expireCalls [][]uuid.UUID
}

func newFakePostRepo(posts ...*model.Post) *fakePostRepo {
	r := &fakePostRepo{posts: make(map[uuid.UUID]*model.Post)}
	for _, p := range posts {
		r.posts[p.ID] = p
	}
	return r
}

func (r *fakePostRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *p
	return &out, nil
}

func (r *fakePostRepo) FindAll(ctx context.Context, filter repository.PostFilter, offset, limit int) ([]*model.Post, int64, error) {
	var out []*model.Post
	for _, p := range r.posts {
		if filter.Status != "" && string(p.Status) != filter.Status {
			continue
		}
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (r *fakePostRepo) FindActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*model.Post, error) {
	var out []*model.Post
	for _, p := range r.posts {
		if p.UserID == userID && p.Status == model.PostStatusActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePostRepo) ExpirePosts(ctx context.Context, ids []uuid.UUID) error {
	r.expireCalls = append(r.expireCalls, ids)
	for _, id := range ids {
		if p, ok := r.posts[id]; ok && p.Status == model.PostStatusActive {
			p.Status = model.PostStatusExpired
		}
	}
	return nil
}

func (r *fakePostRepo) Remove(ctx context.Context, id uuid.UUID) (int64, error) {
	p, ok := r.posts[id]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	p.Status = model.PostStatusRemoved
	return 0, nil
}

func (r *fakePostRepo) CountUrgent(ctx context.Context, urgentThreshold int, activeSince time.Time) (int64, error) {
	var count int64
	for _, p := range r.posts {
		if p.Status == model.PostStatusExpired || p.Status == model.PostStatusRemoved {
			continue
		}
		if !p.PostDate.After(activeSince) {
			continue
		}
		if p.ReportCount >= urgentThreshold {
			count++
		}
	}
	return count, nil
}

type fakeReportRepo struct {
	reports map[uuid.UUID]*model.Report
}

func newFakeReportRepo(reports ...*model.Report) *fakeReportRepo {
	r := &fakeReportRepo{reports: make(map[uuid.UUID]*model.Report)}
	for _, rep := range reports {
		r.reports[rep.ID] = rep
	}
	return r
}

func (r *fakeReportRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Report, error) {
	rep, ok := r.reports[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *rep
	return &out, nil
}

func (r *fakeReportRepo) FindAll(ctx context.Context, status string, offset, limit int) ([]*model.Report, int64, error) {
	var out []*model.Report
	for _, rep := range r.reports {
		if status != "" && string(rep.Status) != status {
			continue
		}
		out = append(out, rep)
	}
	return out, int64(len(out)), nil
}

func (r *fakeReportRepo) FindPendingByPostID(ctx context.Context, postID uuid.UUID) ([]*model.Report, error) {
	var out []*model.Report
	for _, rep := range r.reports {
		if rep.PostID == postID && rep.Status == model.ReportStatusPending {
			out = append(out, rep)
		}
	}
	return out, nil
}

func (r *fakeReportRepo) ResolveByPostID(ctx context.Context, postID uuid.UUID) (int64, error) {
	return r.ResolveByPostIDs(ctx, []uuid.UUID{postID})
}

func (r *fakeReportRepo) ResolveByPostIDs(ctx context.Context, postIDs []uuid.UUID) (int64, error) {
	var count int64
	for _, rep := range r.reports {
		for _, id := range postIDs {
			if rep.PostID == id && rep.Status == model.ReportStatusPending {
				rep.Status = model.ReportStatusResolved
				count++
			}
		}
	}
	return count, nil
}

func (r *fakeReportRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ReportStatus, adminNote string) error {
	rep, ok := r.reports[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	rep.Status = status
	if adminNote != "" {
		rep.AdminNote = adminNote
	}
	return nil
}

// fakeModerationRepo replays the warn cascade over the in-memory stores so
// the orchestration tests verify real end-state, not call counts.
type fakeModerationRepo struct {
	users   *fakeUserRepo
	posts   *fakePostRepo
	reports *fakeReportRepo
	actions []*model.ModerationAction
}

func (r *fakeModerationRepo) Warn(ctx context.Context, cascade repository.WarnCascade) (*repository.WarnResult, error) {
	user, ok := r.users.users[cascade.UserID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	user.WarningCount++

	outcome := moderation.DecideStatusAfterWarn(user, cascade.BanThreshold, cascade.BanDurationDays, time.Now())
	user.Status = outcome.Status
	user.BannedUntil = outcome.BannedUntil

	result := &repository.WarnResult{}
	if cascade.PostID != nil {
		if p, ok := r.posts.posts[*cascade.PostID]; ok {
			p.IsWarned = true
			p.Status = model.PostStatusRemoved
		}
		result.WarnedPostIDs = []uuid.UUID{*cascade.PostID}
	} else {
		for _, p := range r.posts.posts {
			if p.UserID == cascade.UserID && p.Status == model.PostStatusActive {
				p.IsWarned = true
				result.WarnedPostIDs = append(result.WarnedPostIDs, p.ID)
			}
		}
	}

	if len(result.WarnedPostIDs) > 0 {
		resolved, _ := r.reports.ResolveByPostIDs(ctx, result.WarnedPostIDs)
		result.ResolvedReports = resolved
	}

	action := &model.ModerationAction{
		AdminID:         cascade.AdminID,
		TargetUserID:    cascade.UserID,
		PostID:          cascade.PostID,
		Action:          model.ActionWarn,
		ResolvedReports: int(result.ResolvedReports),
		Note:            cascade.Note,
	}
	if user.Status == model.UserStatusBanned {
		action.Action = model.ActionBan
		result.Banned = true
	}
	r.actions = append(r.actions, action)

	out := *user
	result.User = &out
	return result, nil
}

func (r *fakeModerationRepo) SetBanned(ctx context.Context, userID, adminID uuid.UUID, banned bool, banDurationDays int) (*model.User, error) {
	user, ok := r.users.users[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if banned {
		until := time.Now().AddDate(0, 0, banDurationDays)
		user.Status = model.UserStatusBanned
		user.BannedUntil = &until
	} else {
		user.Status = model.UserStatusActive
		user.BannedUntil = nil
	}
	out := *user
	return &out, nil
}

func (r *fakeModerationRepo) SetSuspended(ctx context.Context, userID, adminID uuid.UUID, suspended bool) (*model.User, error) {
	user, ok := r.users.users[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if suspended {
		user.Status = model.UserStatusSuspended
	} else {
		user.Status = model.UserStatusActive
	}
	out := *user
	return &out, nil
}

func (r *fakeModerationRepo) RecentActions(ctx context.Context, limit int) ([]*model.ModerationAction, error) {
	if len(r.actions) > limit {
		return r.actions[:limit], nil
	}
	return r.actions, nil
}

type fakeAnnouncementRepo struct {
	announcements map[uuid.UUID]*model.Announcement
}

func newFakeAnnouncementRepo(announcements ...*model.Announcement) *fakeAnnouncementRepo {
	r := &fakeAnnouncementRepo{announcements: make(map[uuid.UUID]*model.Announcement)}
	for _, a := range announcements {
		r.announcements[a.ID] = a
	}
	return r
}

func (r *fakeAnnouncementRepo) Create(ctx context.Context, a *model.Announcement) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.announcements[a.ID] = a
	return nil
}

func (r *fakeAnnouncementRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Announcement, error) {
	a, ok := r.announcements[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *a
	return &out, nil
}

func (r *fakeAnnouncementRepo) FindAll(ctx context.Context, filter repository.AnnouncementFilter, offset, limit int) ([]*model.Announcement, int64, error) {
	var out []*model.Announcement
	for _, a := range r.announcements {
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

func (r *fakeAnnouncementRepo) FindUpcoming(ctx context.Context, until time.Time) ([]*model.Announcement, error) {
	var out []*model.Announcement
	for _, a := range r.announcements {
		if a.Status != model.AnnouncementStatusPending && a.Status != model.AnnouncementStatusScheduled {
			continue
		}
		if a.StartDate.After(until) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeAnnouncementRepo) Update(ctx context.Context, a *model.Announcement) error {
	if _, ok := r.announcements[a.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.announcements[a.ID] = a
	return nil
}

func (r *fakeAnnouncementRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	a, ok := r.announcements[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Status = model.AnnouncementStatusRemoved
	return nil
}

func (r *fakeAnnouncementRepo) CountActive(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	for _, a := range r.announcements {
		if a.Status == model.AnnouncementStatusRemoved || a.Status == model.AnnouncementStatusPending {
			continue
		}
		if !now.Before(a.StartDate) && !now.After(a.EndDate) {
			count++
		}
	}
	return count, nil
}

type fakeAnnouncerRepo struct {
	announcers   map[uuid.UUID]*model.Announcer
	affiliations []*model.Affiliation
}

func newFakeAnnouncerRepo(announcers ...*model.Announcer) *fakeAnnouncerRepo {
	r := &fakeAnnouncerRepo{announcers: make(map[uuid.UUID]*model.Announcer)}
	for _, a := range announcers {
		r.announcers[a.ID] = a
	}
	return r
}

func (r *fakeAnnouncerRepo) Create(ctx context.Context, a *model.Announcer) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.announcers[a.ID] = a
	return nil
}

func (r *fakeAnnouncerRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Announcer, error) {
	a, ok := r.announcers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *a
	return &out, nil
}

func (r *fakeAnnouncerRepo) FindByEmail(ctx context.Context, email string) (*model.Announcer, error) {
	for _, a := range r.announcers {
		if a.Email == email {
			out := *a
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAnnouncerRepo) FindAll(ctx context.Context, status string, offset, limit int) ([]*model.Announcer, int64, error) {
	var out []*model.Announcer
	for _, a := range r.announcers {
		if status != "" && string(a.Status) != status {
			continue
		}
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

func (r *fakeAnnouncerRepo) Update(ctx context.Context, a *model.Announcer) error {
	if _, ok := r.announcers[a.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.announcers[a.ID] = a
	return nil
}

func (r *fakeAnnouncerRepo) SetStatus(ctx context.Context, id uuid.UUID, status model.AnnouncerStatus) error {
	a, ok := r.announcers[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Status = status
	return nil
}

func (r *fakeAnnouncerRepo) FindAffiliations(ctx context.Context, affiliationType string) ([]*model.Affiliation, error) {
	var out []*model.Affiliation
	for _, a := range r.affiliations {
		if affiliationType != "" && a.Type != affiliationType {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeAnnouncerRepo) FindOrCreateAffiliation(ctx context.Context, affiliationType, name string) (*model.Affiliation, error) {
	for _, a := range r.affiliations {
		if a.Type == affiliationType && a.Name == name {
			return a, nil
		}
	}
	a := &model.Affiliation{ID: uint(len(r.affiliations) + 1), Type: affiliationType, Name: name, IsCustom: true}
	r.affiliations = append(r.affiliations, a)
	return a, nil
}

type fakeNotificationRepo struct {
	notifications []*model.Notification
}

func (r *fakeNotificationRepo) Create(notification *model.Notification) error {
	r.notifications = append(r.notifications, notification)
	return nil
}

func (r *fakeNotificationRepo) GetByUserID(userID uuid.UUID, limit, offset int) ([]model.Notification, error) {
	var out []model.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkAsRead(id uuid.UUID) error {
	for _, n := range r.notifications {
		if n.ID == id {
			n.IsRead = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeNotificationRepo) MarkAllAsRead(userID uuid.UUID) error {
	for _, n := range r.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) CountUnread(userID uuid.UUID) (int64, error) {
	var count int64
	for _, n := range r.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

// fakeNotificationSvc records what the services emit without touching redis.
type fakeNotificationSvc struct {
	created    []*model.Notification
	bellEvents []string
}

func (s *fakeNotificationSvc) CreateNotification(ctx context.Context, notification *model.Notification) error {
	s.created = append(s.created, notification)
	return nil
}

func (s *fakeNotificationSvc) GetNotifications(userID uuid.UUID, limit, offset int) ([]model.Notification, error) {
	return nil, nil
}

func (s *fakeNotificationSvc) MarkAsRead(id uuid.UUID) error { return nil }

func (s *fakeNotificationSvc) MarkAllAsRead(userID uuid.UUID) error { return nil }

func (s *fakeNotificationSvc) UnreadCount(userID uuid.UUID) (int64, error) { return 0, nil }

func (s *fakeNotificationSvc) UrgentCount(ctx context.Context) (*BellCount, error) {
	return &BellCount{}, nil
}

func (s *fakeNotificationSvc) PublishBellEvent(ctx context.Context, reason string) {
	s.bellEvents = append(s.bellEvents, reason)
}

type fakeSearchSvc struct {
	indexedPosts         []string
	indexedAnnouncements []string
	deletedPosts         []string
	deletedAnnouncements []string
}

func (s *fakeSearchSvc) IndexPost(post *model.Post) error {
	s.indexedPosts = append(s.indexedPosts, post.ID.String())
	return nil
}

func (s *fakeSearchSvc) IndexAnnouncement(a *model.Announcement) error {
	s.indexedAnnouncements = append(s.indexedAnnouncements, a.ID.String())
	return nil
}

func (s *fakeSearchSvc) DeletePost(id string) error {
	s.deletedPosts = append(s.deletedPosts, id)
	return nil
}

func (s *fakeSearchSvc) DeleteAnnouncement(id string) error {
	s.deletedAnnouncements = append(s.deletedAnnouncements, id)
	return nil
}

type fakeSpawnRepo struct {
	spawns map[uuid.UUID]*model.ARSpawn
}

func newFakeSpawnRepo(spawns ...*model.ARSpawn) *fakeSpawnRepo {
	r := &fakeSpawnRepo{spawns: make(map[uuid.UUID]*model.ARSpawn)}
	for _, s := range spawns {
		r.spawns[s.ID] = s
	}
	return r
}

func (r *fakeSpawnRepo) Create(ctx context.Context, spawn *model.ARSpawn) error {
	if spawn.ID == uuid.Nil {
		spawn.ID = uuid.New()
	}
	r.spawns[spawn.ID] = spawn
	return nil
}

func (r *fakeSpawnRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ARSpawn, error) {
	s, ok := r.spawns[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *s
	return &out, nil
}

func (r *fakeSpawnRepo) FindBySlug(ctx context.Context, slug string) (*model.ARSpawn, error) {
	for _, s := range r.spawns {
		if s.Slug == slug {
			out := *s
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSpawnRepo) FindAll(ctx context.Context, filter repository.SpawnFilter, offset, limit int) ([]*model.ARSpawn, int64, error) {
	var out []*model.ARSpawn
	for _, s := range r.spawns {
		if filter.Rarity != "" && string(s.Rarity) != filter.Rarity {
			continue
		}
		out = append(out, s)
	}
	return out, int64(len(out)), nil
}

func (r *fakeSpawnRepo) Update(ctx context.Context, spawn *model.ARSpawn) error {
	if _, ok := r.spawns[spawn.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.spawns[spawn.ID] = spawn
	return nil
}

func (r *fakeSpawnRepo) SetStatus(ctx context.Context, id uuid.UUID, status model.SpawnStatus) error {
	s, ok := r.spawns[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.Status = status
	return nil
}
