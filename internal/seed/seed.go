package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/yatube/yatube/internal/app/models"
	appRepos "github.com/yatube/yatube/internal/app/repositories"
	"github.com/yatube/yatube/internal/pkg/apperrors"
	"github.com/yatube/yatube/internal/pkg/auth"
)

// CreateDefaultData creates the default groups and a demo author if they don't exist.
// Called from bootstrap after migrations; failures here are not fatal for startup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	groupRepo := appRepos.NewGroupRepository(dbPool)
	userRepo := appRepos.NewUserRepository(dbPool)
	postRepo := appRepos.NewPostRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (Groups/Demo author)...")
	var finalErr error // To collect potential errors without stopping the process

	// --- Default Groups --- //
	defaultGroups := []appModels.Group{
		{Title: "Prose", Slug: "prose", Description: "Long-form stories and novel excerpts"},
		{Title: "Poetry", Slug: "poetry", Description: "Verse in every form"},
		{Title: "Essays", Slug: "essays", Description: "Opinion pieces and reflections"},
	}

	var proseID int64
	for i := range defaultGroups {
		group := defaultGroups[i]
		id, err := groupRepo.Create(ctx, &group)
		if err != nil && !errors.Is(err, apperrors.ErrGroupAlreadyExists) {
			lgr.Error().Err(err).Str("slug", group.Slug).Msg("Error creating default group")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if errors.Is(err, apperrors.ErrGroupAlreadyExists) {
			// Find existing ID if needed
			existing, errGet := groupRepo.GetBySlug(ctx, group.Slug)
			if errGet != nil {
				lgr.Error().Err(errGet).Str("slug", group.Slug).Msg("Error getting existing group")
				finalErr = errors.Join(finalErr, errGet)
				continue
			}
			id = existing.ID
		}
		if group.Slug == "prose" {
			proseID = id
		}
	}

	// --- Demo Author --- //
	// Demo posts are created together with the author, so reruns don't duplicate them.
	exists, err := userRepo.UsernameExists(ctx, "leo_tolstoy")
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if demo author exists")
		finalErr = errors.Join(finalErr, err)
	} else if !exists {
		lgr.Info().Msg("Creating demo author...")

		hashedPassword, err := auth.HashPassword("WarAndPeace1869")
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing demo author password")
			finalErr = errors.Join(finalErr, err)
		} else {
			email := "leo@yatube.app"
			author := &appModels.User{
				Username:  "leo_tolstoy",
				Email:     &email,
				Password:  hashedPassword,
				FirstName: "Lev",
				LastName:  "Tolstoy",
				IsActive:  true,
			}

			if err := userRepo.Create(ctx, author); err != nil {
				lgr.Error().Err(err).Msg("Error creating demo author")
				finalErr = errors.Join(finalErr, err)
			} else {
				lgr.Info().Int64("authorID", author.ID).Msg("Demo author created successfully")

				demoPosts := []appModels.Post{
					{
						Text:     "All happy families are alike; each unhappy family is unhappy in its own way.",
						AuthorID: author.ID,
					},
					{
						Text:     "Welcome to Yatube. Pick a group, write a post, follow the authors you like.",
						AuthorID: author.ID,
					},
				}
				if proseID > 0 {
					demoPosts[0].GroupID = &proseID
				}
				for i := range demoPosts {
					if _, err := postRepo.Create(ctx, &demoPosts[i]); err != nil {
						lgr.Error().Err(err).Msg("Error creating demo post")
						finalErr = errors.Join(finalErr, err)
					}
				}
			}
		}
	} else {
		lgr.Info().Msg("Demo author already exists, skipping creation")
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr // Return collected errors, if any
}
