package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/Dosada05/chess-league/reports"
	"github.com/Dosada05/chess-league/repositories"
	"github.com/Dosada05/chess-league/storage"
)

const (
	FormatDWZ        = "dwz"
	FormatFIDE       = "fide"
	FormatCrosstable = "xlsx"
)

// Export is a rendered report ready to be served.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
	ArchiveURL  string
}

type ReportService interface {
	Export(ctx context.Context, groupID int, format string) (*Export, error)
}

// Archiver stores a copy of an export; ReportArchive implements it.
type Archiver interface {
	Store(ctx context.Context, groupID int, ext string, contentType string, data []byte) (*storage.UploadResult, error)
}

type reportService struct {
	groupRepo       repositories.GroupRepository
	participantRepo repositories.ParticipantRepository
	gameRepo        repositories.GameRepository
	archive         Archiver
	latin1DWZ       bool
	logger          *slog.Logger
}

// NewReportService builds the export service; archive may be nil.
func NewReportService(
	groupRepo repositories.GroupRepository,
	participantRepo repositories.ParticipantRepository,
	gameRepo repositories.GameRepository,
	archive Archiver,
	latin1DWZ bool,
	logger *slog.Logger,
) ReportService {
	return &reportService{
		groupRepo:       groupRepo,
		participantRepo: participantRepo,
		gameRepo:        gameRepo,
		archive:         archive,
		latin1DWZ:       latin1DWZ,
		logger:          logger,
	}
}

func (s *reportService) Export(ctx context.Context, groupID int, format string) (*Export, error) {
	switch format {
	case FormatDWZ, FormatFIDE, FormatCrosstable:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	data, err := loadGroupData(ctx, s.groupRepo, s.participantRepo, s.gameRepo, groupID)
	if err != nil {
		return nil, err
	}
	in, err := reports.Prepare(*data.group, data.participants, data.games)
	if err != nil {
		return nil, fmt.Errorf("failed to rank group %d: %w", groupID, err)
	}

	export, ext, err := s.render(in, groupID, format)
	if err != nil {
		switch {
		case errors.Is(err, reports.ErrMissingMetadata):
			return nil, fmt.Errorf("%w: %w", ErrIncompleteMetadata, err)
		case errors.Is(err, reports.ErrDateCollision):
			return nil, fmt.Errorf("%w: %w", ErrScheduleConflict, err)
		}
		return nil, fmt.Errorf("failed to render %s report for group %d: %w", format, groupID, err)
	}

	if s.archive != nil {
		stored, err := s.archive.Store(ctx, groupID, ext, export.ContentType, export.Data)
		if err != nil {
			s.logger.WarnContext(ctx, "report not archived", slog.Int("group_id", groupID), slog.String("format", format), slog.Any("error", err))
		} else {
			export.ArchiveURL = stored.Location
		}
	}

	s.logger.InfoContext(ctx, "report exported",
		slog.Int("group_id", groupID), slog.String("format", format), slog.Int("bytes", len(export.Data)))
	return export, nil
}

func (s *reportService) render(in reports.Input, groupID int, format string) (*Export, string, error) {
	switch format {
	case FormatDWZ:
		text, err := reports.DWZ(in)
		if err != nil {
			return nil, "", err
		}
		export := &Export{
			Filename:    fmt.Sprintf("group-%d-dwz.txt", groupID),
			ContentType: "text/plain; charset=utf-8",
			Data:        []byte(text),
		}
		if s.latin1DWZ {
			encoded, err := encodeLatin1(text)
			if err != nil {
				return nil, "", err
			}
			export.ContentType = "text/plain; charset=iso-8859-1"
			export.Data = encoded
		}
		return export, "txt", nil

	case FormatFIDE:
		text, err := reports.FIDE(in)
		if err != nil {
			return nil, "", err
		}
		return &Export{
			Filename:    fmt.Sprintf("group-%d-fide.trf", groupID),
			ContentType: "text/plain; charset=us-ascii",
			Data:        []byte(text),
		}, "trf", nil

	default:
		data, err := reports.Crosstable(in)
		if err != nil {
			return nil, "", err
		}
		return &Export{
			Filename:    fmt.Sprintf("group-%d-crosstable.xlsx", groupID),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, "xlsx", nil
	}
}

// encodeLatin1 refuses text with runes outside ISO 8859-1 instead of
// substituting them.
func encodeLatin1(text string) ([]byte, error) {
	for i, line := range strings.Split(text, "\r\n") {
		for _, r := range line {
			if _, ok := charmap.ISO8859_1.EncodeRune(r); !ok {
				return nil, fmt.Errorf("%w: %q on line %d is not in Latin-1", ErrUnencodableReport, r, i+1)
			}
		}
	}
	encoded, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnencodableReport, err)
	}
	return encoded, nil
}
