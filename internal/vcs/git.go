// Package vcs manages release tags with go-git, so tagging works without a
// git binary on PATH.
package vcs

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
)

// ErrNotRepository is returned by Open when dir is not inside a git
// work tree.
var ErrNotRepository = errors.New("not a git repository")

// tagRefSpec pushes every local tag.
const tagRefSpec = config.RefSpec("refs/tags/*:refs/tags/*")

// GitTagger creates and pushes release tags.
type GitTagger struct {
	repo *git.Repository
}

// Open opens the repository containing dir, searching parent directories.
func Open(dir string) (*GitTagger, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%s: %w", dir, ErrNotRepository)
		}
		return nil, fmt.Errorf("open repository: %w", err)
	}
	return &GitTagger{repo: repo}, nil
}

// RecreateTag deletes the tag name if present and creates a lightweight tag
// with the same name at HEAD.
func (g *GitTagger) RecreateTag(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	head, err := g.repo.Head()
	if err != nil {
		return fmt.Errorf("resolve HEAD: %w", err)
	}

	if err := g.repo.DeleteTag(name); err != nil && !errors.Is(err, git.ErrTagNotFound) {
		return fmt.Errorf("delete tag %s: %w", name, err)
	}

	if _, err := g.repo.CreateTag(name, head.Hash(), nil); err != nil {
		return fmt.Errorf("create tag %s: %w", name, err)
	}
	return nil
}

// PushTags pushes all local tags to remote. An up-to-date remote is not an
// error.
func (g *GitTagger) PushTags(ctx context.Context, remote string) error {
	err := g.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remote,
		RefSpecs:   []config.RefSpec{tagRefSpec},
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("push tags to %s: %w", remote, err)
	}
	return nil
}

// TagTarget returns the hash of the commit a tag points to.
func (g *GitTagger) TagTarget(name string) (string, error) {
	ref, err := g.repo.Tag(name)
	if err != nil {
		return "", fmt.Errorf("tag %s: %w", name, err)
	}
	return ref.Hash().String(), nil
}
