// Package update checks GitHub Releases for newer healtop builds and replaces
// the running binary.
package update

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	selfupdate "github.com/creativeprojects/go-selfupdate"
	"go.uber.org/zap"
)

// Repo is the GitHub slug releases are published under.
const Repo = "justinpbarnett/healtop"

const (
	checkTimeout = 10 * time.Second
	applyTimeout = 2 * time.Minute
)

// ErrDevBuild is returned by Apply for builds without a release version.
var ErrDevBuild = errors.New("cannot update a development build, install from a release first")

// Release holds information about an available update.
type Release struct {
	Version      string
	URL          string
	ReleaseNotes string
}

type Checker struct {
	repo string
	log  *zap.Logger
}

func NewChecker(repo string, log *zap.Logger) *Checker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Checker{repo: repo, log: log}
}

// IsDevBuild reports whether version carries no usable release number.
func IsDevBuild(version string) bool {
	if version == "" || version == "dev" {
		return true
	}
	_, err := parseSemver(version)
	return err != nil
}

// Check returns the newest release when it is newer than current, or nil.
// Development builds never report an update.
func (c *Checker) Check(ctx context.Context, current string) (*Release, error) {
	if IsDevBuild(current) {
		return nil, nil
	}
	cur, _ := parseSemver(current)

	updater, err := newUpdater()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	latest, found, err := updater.DetectLatest(ctx, selfupdate.ParseSlug(c.repo))
	if err != nil {
		return nil, fmt.Errorf("detect latest release: %w", err)
	}
	if !found {
		c.log.Debug("no release found", zap.String("repo", c.repo))
		return nil, nil
	}

	latestVer, err := semver.NewVersion(latest.Version())
	if err != nil || !latestVer.GreaterThan(cur) {
		return nil, nil
	}

	c.log.Info("update available", zap.String("current", current), zap.String("latest", latest.Version()))
	return &Release{
		Version:      latest.Version(),
		URL:          latest.URL,
		ReleaseNotes: latest.ReleaseNotes,
	}, nil
}

// Apply downloads the latest release binary and replaces the current executable.
func (c *Checker) Apply(ctx context.Context, current string) (*Release, error) {
	if IsDevBuild(current) {
		return nil, ErrDevBuild
	}

	updater, err := newUpdater()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, applyTimeout)
	defer cancel()

	rel, err := updater.UpdateSelf(ctx, strings.TrimPrefix(current, "v"), selfupdate.ParseSlug(c.repo))
	if err != nil {
		return nil, fmt.Errorf("update failed: %w", err)
	}

	c.log.Info("updated", zap.String("from", current), zap.String("to", rel.Version()))
	return &Release{
		Version:      rel.Version(),
		URL:          rel.URL,
		ReleaseNotes: rel.ReleaseNotes,
	}, nil
}

func newUpdater() (*selfupdate.Updater, error) {
	source, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return nil, fmt.Errorf("create github source: %w", err)
	}
	updater, err := selfupdate.NewUpdater(selfupdate.Config{Source: source})
	if err != nil {
		return nil, fmt.Errorf("create updater: %w", err)
	}
	return updater, nil
}

// CompareVersions compares two semver strings.
// Returns -1 if current < latest, 0 if equal, 1 if current > latest.
// Unparseable versions are treated as less than any valid version.
func CompareVersions(current, latest string) int {
	cv, errC := parseSemver(current)
	lv, errL := parseSemver(latest)

	if errC != nil && errL != nil {
		return 0
	}
	if errC != nil {
		return -1
	}
	if errL != nil {
		return 1
	}

	return cv.Compare(lv)
}

// parseSemver strips a leading "v". Git-describe suffixes like
// "0.1.0-3-gabcdef" parse as prereleases.
func parseSemver(s string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(s, "v"))
}
