// Package ingest walks a GitHub user's starred repositories, fetches each
// one's README, persists new repositories, and streams progress to a
// caller-supplied sink.
package ingest

import (
	"context"
	"fmt"
	"log"

	"starscout/internal/github"
	"starscout/internal/models"
)

const defaultPerPage = 100

// ---- Store contract --------------------------------------------------------

// RepoStore is the slice of the repository store the pipeline writes through.
type RepoStore interface {
	Save(ctx context.Context, githubUsername string, info models.RepoInfo) (int64, error)
}

// ---- Service ---------------------------------------------------------------

// Service runs ingestion for one username at a time. Instances are safe for
// concurrent use; each run is an independent sequential task.
type Service struct {
	gh      *github.Client
	store   RepoStore
	perPage int
}

// NewService wires the GitHub client and the store.
func NewService(gh *github.Client, store RepoStore) *Service {
	return &Service{gh: gh, store: store, perPage: defaultPerPage}
}

// Ingest fetches and processes all starred repositories for a GitHub user.
//
// Items are processed strictly in API order, page by page: each item's
// progress event, README fetch, and store write complete before the next
// item is touched, so progress counts always reflect finished work. A
// missing README is the only recoverable per-item failure—the item is
// counted but not stored. Any other failure aborts the run and is returned;
// no partial success result is produced. The context is checked between
// pages and between items so a cancelled run stops promptly.
func (s *Service) Ingest(ctx context.Context, githubUsername string, sink ProgressSink) (*models.IngestResult, error) {
	log.Printf("Starting to fetch and process starred repositories for user: %s", githubUsername)

	totalRepos, err := s.gh.TotalStarred(ctx, githubUsername)
	if err != nil {
		log.Printf("Error processing repositories: %v", err)
		return nil, err
	}

	var processed []models.RepoInfo
	page := 1

	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("ingest: run for %s cancelled: %w", githubUsername, err)
		}

		repos, hasNext, err := s.gh.ListStarredPage(ctx, githubUsername, page, s.perPage)
		if err != nil {
			log.Printf("Error processing repositories: %v", err)
			return nil, err
		}
		if len(repos) == 0 {
			break
		}

		log.Printf("Processing %d repositories on page %d", len(repos), page)

		for _, repo := range repos {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("ingest: run for %s cancelled: %w", githubUsername, err)
			}

			s.send(sink, models.ProgressEvent{
				CurrentRepo:    repo.FullName,
				ProcessedCount: len(processed),
				TotalCount:     totalRepos,
			})

			readme, err := s.gh.FetchReadme(ctx, repo.FullName)
			if err != nil {
				log.Printf("Error processing repositories: %v", err)
				return nil, err
			}

			info := models.RepoInfo{
				Name:        repo.Name,
				FullName:    repo.FullName,
				Description: repo.Description,
				Readme:      readme,
				URL:         repo.HTMLURL,
				Language:    repo.Language,
				Stars:       repo.Stars,
			}

			if readme != "" {
				if _, err := s.store.Save(ctx, githubUsername, info); err != nil {
					log.Printf("Error processing repositories: %v", err)
					return nil, err
				}
				log.Printf("Processed and stored info for %s", repo.FullName)
			} else {
				log.Printf("No README found for %s", repo.FullName)
			}

			processed = append(processed, info)
		}

		if !hasNext {
			break
		}
		page++
	}

	log.Printf("Finished processing all repositories for user: %s", githubUsername)
	s.send(sink, models.ProgressEvent{Status: models.StatusComplete})

	return &models.IngestResult{
		GithubUsername: githubUsername,
		ReposProcessed: len(processed),
		Repositories:   processed,
		Status:         models.StatusSuccess,
	}, nil
}

// send delivers one event. A failing sink (e.g. a disconnected streaming
// client) stops mattering for progress delivery but never aborts the run.
func (s *Service) send(sink ProgressSink, ev models.ProgressEvent) {
	if err := sink.Send(ev); err != nil {
		log.Printf("Dropping progress event: %v", err)
	}
}
