package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/inkwellco/inkwell/pkg/fsutil"
)

func enabledBackups() fsutil.BackupConfig {
	return fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}
}

func TestCreateBackup(t *testing.T) {
	t.Parallel()

	t.Run("creates sidecar copy", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "doc.md")
		if err := os.WriteFile(path, []byte("original"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		created, err := fsutil.CreateBackup(context.Background(), path, enabledBackups())
		if err != nil {
			t.Fatalf("CreateBackup() error = %v", err)
		}
		if !created {
			t.Fatal("CreateBackup() reported no backup written")
		}

		got, err := os.ReadFile(path + fsutil.BackupSuffix)
		if err != nil {
			t.Fatalf("read backup: %v", err)
		}
		if string(got) != "original" {
			t.Errorf("backup content = %q, want %q", got, "original")
		}
	})

	t.Run("never overwrites an existing backup", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "doc.md")
		if err := os.WriteFile(path, []byte("first"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		ctx := context.Background()
		if _, err := fsutil.CreateBackup(ctx, path, enabledBackups()); err != nil {
			t.Fatalf("first backup: %v", err)
		}
		if err := os.WriteFile(path, []byte("second"), 0644); err != nil {
			t.Fatalf("rewrite: %v", err)
		}

		created, err := fsutil.CreateBackup(ctx, path, enabledBackups())
		if err != nil {
			t.Fatalf("second backup: %v", err)
		}
		if created {
			t.Error("second CreateBackup() overwrote the first")
		}

		got, _ := os.ReadFile(path + fsutil.BackupSuffix)
		if string(got) != "first" {
			t.Errorf("backup content = %q, want %q", got, "first")
		}
	})

	t.Run("disabled config is a no-op", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "doc.md")
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		created, err := fsutil.CreateBackup(context.Background(), path, fsutil.DefaultBackupConfig())
		if err != nil {
			t.Fatalf("CreateBackup() error = %v", err)
		}
		if created {
			t.Error("disabled backups still wrote a file")
		}
	})

	t.Run("missing original is not an error", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "ghost.md")
		created, err := fsutil.CreateBackup(context.Background(), path, enabledBackups())
		if err != nil {
			t.Fatalf("CreateBackup() error = %v", err)
		}
		if created {
			t.Error("backup created for a file that does not exist")
		}
	})
}

func TestRestoreBackup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	ctx := context.Background()

	if err := os.WriteFile(path, []byte("good"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, err := fsutil.CreateBackup(ctx, path, enabledBackups()); err != nil {
		t.Fatalf("backup: %v", err)
	}
	if err := os.WriteFile(path, []byte("broken"), 0644); err != nil {
		t.Fatalf("damage: %v", err)
	}

	restored, err := fsutil.RestoreBackup(ctx, path, fsutil.BackupModeSidecar)
	if err != nil {
		t.Fatalf("RestoreBackup() error = %v", err)
	}
	if !restored {
		t.Fatal("RestoreBackup() found no backup")
	}
	got, _ := os.ReadFile(path)
	if string(got) != "good" {
		t.Errorf("restored content = %q, want %q", got, "good")
	}

	restored, err = fsutil.RestoreBackup(ctx, filepath.Join(dir, "other.md"), fsutil.BackupModeSidecar)
	if err != nil || restored {
		t.Errorf("restore without backup = %v, %v, want false, nil", restored, err)
	}
}

func TestRemoveBackup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	ctx := context.Background()

	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, err := fsutil.CreateBackup(ctx, path, enabledBackups()); err != nil {
		t.Fatalf("backup: %v", err)
	}
	if !fsutil.BackupExists(path, fsutil.BackupModeSidecar) {
		t.Fatal("BackupExists() = false after CreateBackup")
	}

	removed, err := fsutil.RemoveBackup(path, fsutil.BackupModeSidecar)
	if err != nil {
		t.Fatalf("RemoveBackup() error = %v", err)
	}
	if !removed {
		t.Error("RemoveBackup() removed nothing")
	}
	if fsutil.BackupExists(path, fsutil.BackupModeSidecar) {
		t.Error("backup still present after RemoveBackup")
	}

	removed, err = fsutil.RemoveBackup(path, fsutil.BackupModeSidecar)
	if err != nil || removed {
		t.Errorf("second RemoveBackup() = %v, %v, want false, nil", removed, err)
	}
}

func TestBackupPath(t *testing.T) {
	t.Parallel()

	if got := fsutil.BackupPath("a/doc.md", fsutil.BackupModeSidecar); got != "a/doc.md"+fsutil.BackupSuffix {
		t.Errorf("sidecar path = %q", got)
	}
	if got := fsutil.BackupPath("a/doc.md", fsutil.BackupModeNone); got != "" {
		t.Errorf("none path = %q, want empty", got)
	}
}
