package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"waxcrate/internal/credits"
	"waxcrate/internal/discogs"
	"waxcrate/internal/release"
)

// ErrNotFound is returned when no release matches the query.
var ErrNotFound = errors.New("release not found")

// Service runs lookups against the metadata provider.
type Service struct {
	client discogs.Fetcher
	table  *credits.Table
	logger *slog.Logger
}

// NewService creates a lookup service.
func NewService(client discogs.Fetcher, table *credits.Table, logger *slog.Logger) (*Service, error) {
	if client == nil {
		return nil, errors.New("discogs client required")
	}
	if table == nil {
		return nil, errors.New("category table required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{client: client, table: table, logger: logger}, nil
}

// ByReleaseID identifies a pressing by its release id and tags the
// result with the given provenance.
func (s *Service) ByReleaseID(ctx context.Context, id int64, addedFrom string) (release.Formatted, error) {
	current, err := s.client.GetRelease(ctx, id)
	if err != nil {
		return release.Formatted{}, err
	}
	if current == nil {
		return release.Formatted{}, fmt.Errorf("release %d: %w", id, ErrNotFound)
	}
	return s.format(ctx, current, addedFrom)
}

// ByURL identifies a pressing from a Discogs release or master URL.
func (s *Service) ByURL(ctx context.Context, rawURL string) (release.Formatted, error) {
	if id, err := discogs.ExtractReleaseID(rawURL); err == nil {
		return s.ByReleaseID(ctx, id, release.AddedFromURL)
	}
	masterID, err := discogs.ExtractMasterID(rawURL)
	if err != nil {
		return release.Formatted{}, fmt.Errorf("unrecognized discogs url %q", rawURL)
	}
	master, err := s.client.GetMaster(ctx, masterID)
	if err != nil {
		return release.Formatted{}, err
	}
	if master == nil || master.MainRelease <= 0 {
		return release.Formatted{}, fmt.Errorf("master %d: %w", masterID, ErrNotFound)
	}
	return s.ByReleaseID(ctx, master.MainRelease, release.AddedFromURL)
}

// ByBarcode identifies a pressing by barcode, trying the UPC and EAN
// spellings of the scanned code before giving up.
func (s *Service) ByBarcode(ctx context.Context, code string) (release.Formatted, error) {
	variants, err := barcodeVariants(code)
	if err != nil {
		return release.Formatted{}, err
	}
	for _, variant := range variants {
		s.logger.Debug("searching barcode", "barcode", variant)
		resp, err := s.client.SearchBarcode(ctx, variant)
		if err != nil {
			return release.Formatted{}, err
		}
		for _, result := range resp.Results {
			if result.Type != "" && result.Type != "release" {
				continue
			}
			formatted, err := s.ByReleaseID(ctx, result.ID, release.AddedFromBarcode)
			if errors.Is(err, ErrNotFound) {
				continue
			}
			if err != nil {
				return release.Formatted{}, err
			}
			if formatted.Barcode == "" {
				formatted.Barcode = code
			}
			return formatted, nil
		}
	}
	return release.Formatted{}, fmt.Errorf("barcode %s: %w", code, ErrNotFound)
}

// format walks the master chain for a fetched pressing and produces the
// reconciled record. Missing masters and original releases degrade to
// the current pressing rather than failing.
func (s *Service) format(ctx context.Context, current *discogs.Release, addedFrom string) (release.Formatted, error) {
	var (
		master   *discogs.Master
		original *discogs.Release
		err      error
	)

	if current.MasterID > 0 {
		master, err = s.client.GetMaster(ctx, current.MasterID)
		if err != nil {
			return release.Formatted{}, err
		}
		if master == nil {
			s.logger.Debug("master missing, continuing with release only",
				"release_id", current.ID, "master_id", current.MasterID)
		}
	}

	if master != nil && master.MainRelease > 0 {
		if master.MainRelease == current.ID {
			original = current
		} else {
			original, err = s.client.GetRelease(ctx, master.MainRelease)
			if err != nil {
				return release.Formatted{}, err
			}
			if original == nil {
				s.logger.Debug("original release missing, current stands in",
					"release_id", current.ID, "main_release", master.MainRelease)
			}
		}
	}

	currentEdition := current.Edition()
	originalEdition := original.Edition()
	masterEdition := master.Edition()

	musicians := credits.Aggregate(s.table, release.CreditSources(originalEdition, currentEdition))
	formatted, err := release.Format(masterEdition, originalEdition, currentEdition, musicians, addedFrom)
	if err != nil {
		return release.Formatted{}, err
	}

	s.logger.Debug("lookup formatted",
		"release_id", current.ID,
		"master_id", formatted.MasterID,
		"original_release_id", formatted.OriginalReleaseID,
		"credits", musicians.Count())
	return formatted, nil
}
