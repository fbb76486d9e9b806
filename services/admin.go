package services

import (
	"context"

	"github.com/phillip/hostel-fest-payments/navigation"
	"github.com/phillip/hostel-fest-payments/store"
	"github.com/phillip/hostel-fest-payments/toast"
	"github.com/phillip/hostel-fest-payments/utils"
	"github.com/phillip/hostel-fest-payments/views"
)

// RefreshStats recomputes the collected total from the paid users, rewrites
// the cached eventDetails.totalCollected and saves.
func (a *App) RefreshStats(ctx context.Context) (views.AdminStats, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.requireRole(navigation.RoleAdmin); err != nil {
		return views.AdminStats{}, err
	}
	var stats views.AdminStats
	err := a.guard("Loading stats", func() error {
		stats = a.refreshStatsLocked(ctx)
		return nil
	})
	return stats, err
}

func (a *App) refreshStatsLocked(ctx context.Context) views.AdminStats {
	_ = a.store.Update(func(tx *store.Tx) error {
		tx.Data.EventDetails.TotalCollected = tx.Data.CollectedTotal()
		return nil
	})
	a.persist(ctx)
	return views.Stats(a.store.Snapshot())
}

// AdminDashboard renders every admin list.
func (a *App) AdminDashboard() (views.AdminDashboard, error) {
	if _, err := a.requireRole(navigation.RoleAdmin); err != nil {
		return views.AdminDashboard{}, err
	}
	return views.Admin(a.store.Snapshot()), nil
}

// Backup uploads the current store document and removes the previous
// backup once the new one is in place.
func (a *App) Backup(ctx context.Context) (utils.Backup, error) {
	a.mu.Lock()
	if _, err := a.requireRole(navigation.RoleAdmin); err != nil {
		a.mu.Unlock()
		return utils.Backup{}, err
	}
	if a.backup == nil {
		a.mu.Unlock()
		return utils.Backup{}, ErrBackupDisabled
	}
	data, err := a.store.Export()
	prev := a.lastBackup
	a.mu.Unlock()
	if err != nil {
		return utils.Backup{}, err
	}

	res, err := a.backup.Upload(ctx, a.store.Key(), data)
	if err != nil {
		a.log.Error("backup upload failed", "err", err)
		a.toasts.Push(toast.Error, "Backup failed. Please try again.")
		return utils.Backup{}, err
	}
	if prev != nil && prev.PublicID != res.PublicID {
		if err := a.backup.Delete(ctx, prev.PublicID); err != nil {
			a.log.Warn("could not remove previous backup", "public_id", prev.PublicID, "err", err)
		}
	}

	a.mu.Lock()
	a.lastBackup = &res
	a.mu.Unlock()

	a.toasts.Push(toast.Success, "Backup uploaded")
	a.log.Info("backup uploaded", "public_id", res.PublicID, "bytes", res.Bytes)
	return res, nil
}
