package db

import (
	"context"

	"github.com/ncaufield/devportal/pkg/core/model"
)

// ScheduleStore defines the persistence operations for shift lists.
// Lists are stored whole, keyed by track and year; a save replaces the
// stored list in one transaction.
type ScheduleStore interface {
	GetOnDutyShifts(ctx context.Context, year int) ([]model.OnDutyShift, error)
	ReplaceOnDutyShifts(ctx context.Context, year int, shifts []model.OnDutyShift) error
	GetOnCallShifts(ctx context.Context, year int) ([]model.OnCallShift, error)
	ReplaceOnCallShifts(ctx context.Context, year int, shifts []model.OnCallShift) error
}

// MemberStore defines the roster operations
type MemberStore interface {
	ListMembers(ctx context.Context) ([]model.Member, error)
	InsertMember(ctx context.Context, member *model.Member) error
	DeleteMember(ctx context.Context, id string) error
}

// QuickLinkStore defines the quick-link operations
type QuickLinkStore interface {
	ListQuickLinks(ctx context.Context) ([]model.QuickLink, error)
	InsertQuickLink(ctx context.Context, link *model.QuickLink) error
	DeleteQuickLink(ctx context.Context, id string) error
}

// PluginStore defines the plugin registry operations
type PluginStore interface {
	ListPlugins(ctx context.Context) ([]model.Plugin, error)
	UpsertPlugin(ctx context.Context, plugin *model.Plugin) error
	SetPluginEnabled(ctx context.Context, id string, enabled bool) error
}

// SettingsStore defines the portal settings operations
type SettingsStore interface {
	ListSettings(ctx context.Context) ([]model.Setting, error)
	PutSetting(ctx context.Context, key, value string) error
}

// Store is the full set of operations the portal needs from its database
type Store interface {
	ScheduleStore
	MemberStore
	QuickLinkStore
	PluginStore
	SettingsStore
}
