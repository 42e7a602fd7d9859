package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/dto"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/model"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/repository"
)

var (
	ErrSelfArchive      = errors.New("自分自身をアーカイブすることはできません")
	ErrArchiveForbidden = errors.New("アーカイブ情報を閲覧する権限がありません")
)

// ArchiveService アーカイブ・閲覧権限ビジネスロジック
type ArchiveService interface {
	// Archive ユーザーを年度つきでアーカイブし、ログイン・予約を停止する
	Archive(ctx context.Context, adminID, userID string, req *dto.ArchiveUserRequest) error
	// Unarchive アーカイブを解除する。未アーカイブのユーザーにも安全
	Unarchive(ctx context.Context, userID string) error
	Grant(ctx context.Context, req *dto.GrantArchiveAccessRequest) error
	Revoke(ctx context.Context, instructorID, studentID string) error
	// ListAccesses 閲覧権限の一覧。studentID 指定時はその生徒分のみ
	ListAccesses(ctx context.Context, studentID string) ([]dto.ArchiveAccessResponse, error)
	// Search アーカイブ済みユーザーを検索する（合否結果つき）
	Search(ctx context.Context, query *dto.ArchivedUserQuery) ([]dto.ArchivedUserResponse, error)
	// ListLicensed 講師に閲覧が許可されたアーカイブ生徒の一覧
	ListLicensed(ctx context.Context, instructorID string) ([]dto.ArchivedUserResponse, error)
}

type archiveService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewArchiveService ArchiveService を生成する
func NewArchiveService(repo *repository.Repository, logger *zap.Logger) ArchiveService {
	return &archiveService{repo: repo, logger: logger, now: time.Now}
}

func (s *archiveService) Archive(ctx context.Context, adminID, userID string, req *dto.ArchiveUserRequest) error {
	if adminID == userID {
		return ErrSelfArchive
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}

	archivedAt := s.now()
	year := req.ArchiveYear
	user.ArchivedAt = &archivedAt
	user.ArchiveYear = &year
	user.IsActive = false

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("アーカイブに失敗", zap.Error(err))
		return err
	}

	s.logger.Info("ユーザーアーカイブ完了",
		zap.String("user_id", userID),
		zap.Int("archive_year", year),
	)
	return nil
}

func (s *archiveService) Unarchive(ctx context.Context, userID string) error {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}

	user.ArchivedAt = nil
	user.ArchiveYear = nil
	user.IsActive = true

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("アーカイブ解除に失敗", zap.Error(err))
		return err
	}

	s.logger.Info("ユーザーアーカイブ解除完了", zap.String("user_id", userID))
	return nil
}

func (s *archiveService) Grant(ctx context.Context, req *dto.GrantArchiveAccessRequest) error {
	instructor, err := s.getUser(ctx, req.InstructorID)
	if err != nil {
		return err
	}
	if instructor.Role != model.RoleInstructor {
		return ErrNotInstructor
	}
	if _, err := s.getUser(ctx, req.StudentID); err != nil {
		return err
	}

	exists, err := s.repo.ArchiveAccess.Exists(ctx, req.InstructorID, req.StudentID)
	if err != nil {
		s.logger.Error("閲覧権限の確認に失敗", zap.Error(err))
		return err
	}
	if exists {
		// 付与済みペアへの再付与は何もしない（冪等）
		return nil
	}

	access := &model.ArchiveAccess{
		InstructorID: req.InstructorID,
		StudentID:    req.StudentID,
	}
	if err := s.repo.ArchiveAccess.Grant(ctx, access); err != nil {
		s.logger.Error("閲覧権限の付与に失敗", zap.Error(err))
		return err
	}

	s.logger.Info("閲覧権限付与完了",
		zap.String("instructor_id", req.InstructorID),
		zap.String("student_id", req.StudentID),
	)
	return nil
}

func (s *archiveService) Revoke(ctx context.Context, instructorID, studentID string) error {
	// 存在しないペアの取り消しも成功扱い（冪等）
	if err := s.repo.ArchiveAccess.Revoke(ctx, instructorID, studentID); err != nil {
		s.logger.Error("閲覧権限の取り消しに失敗", zap.Error(err))
		return err
	}

	s.logger.Info("閲覧権限取り消し完了",
		zap.String("instructor_id", instructorID),
		zap.String("student_id", studentID),
	)
	return nil
}

func (s *archiveService) ListAccesses(ctx context.Context, studentID string) ([]dto.ArchiveAccessResponse, error) {
	accesses, err := s.repo.ArchiveAccess.ListAll(ctx)
	if err != nil {
		s.logger.Error("閲覧権限一覧の取得に失敗", zap.Error(err))
		return nil, err
	}

	out := make([]dto.ArchiveAccessResponse, 0, len(accesses))
	for i := range accesses {
		a := &accesses[i]
		if studentID != "" && a.StudentID != studentID {
			continue
		}
		row := dto.ArchiveAccessResponse{
			ID:           a.ID,
			InstructorID: a.InstructorID,
			StudentID:    a.StudentID,
		}
		if a.Instructor != nil {
			resp := dto.NewUserResponse(a.Instructor)
			row.Instructor = &resp
		}
		if a.Student != nil {
			resp := dto.NewUserResponse(a.Student)
			row.Student = &resp
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *archiveService) Search(ctx context.Context, query *dto.ArchivedUserQuery) ([]dto.ArchivedUserResponse, error) {
	filter := repository.ArchivedUserFilter{
		Role:   query.Role,
		School: query.School,
	}
	if query.Year != 0 {
		year := query.Year
		filter.Year = &year
	}
	switch query.Status {
	case "":
		// 条件なし
	case "PASSED":
		// 合格バケット＝一次合格＋最終合格
		filter.Statuses = []string{model.AdmissionStatusPassedFirst, model.AdmissionStatusPassedFinal}
	default:
		filter.Statuses = []string{query.Status}
	}

	users, err := s.repo.User.ListArchived(ctx, filter)
	if err != nil {
		s.logger.Error("アーカイブ検索に失敗", zap.Error(err))
		return nil, err
	}

	return s.withAdmissionResults(ctx, users)
}

func (s *archiveService) ListLicensed(ctx context.Context, instructorID string) ([]dto.ArchivedUserResponse, error) {
	accesses, err := s.repo.ArchiveAccess.ListByInstructor(ctx, instructorID)
	if err != nil {
		s.logger.Error("閲覧権限一覧の取得に失敗", zap.Error(err))
		return nil, err
	}

	users := make([]model.User, 0, len(accesses))
	for i := range accesses {
		if accesses[i].Student != nil && accesses[i].Student.IsArchived() {
			users = append(users, *accesses[i].Student)
		}
	}
	return s.withAdmissionResults(ctx, users)
}

func (s *archiveService) withAdmissionResults(ctx context.Context, users []model.User) ([]dto.ArchivedUserResponse, error) {
	out := make([]dto.ArchivedUserResponse, 0, len(users))
	for i := range users {
		row := dto.ArchivedUserResponse{UserResponse: dto.NewUserResponse(&users[i])}
		if users[i].Role == model.RoleStudent {
			results, err := s.repo.AdmissionResult.ListByStudent(ctx, users[i].ID)
			if err != nil {
				s.logger.Error("合否結果の取得に失敗", zap.Error(err))
				return nil, err
			}
			row.AdmissionResults = dto.NewAdmissionResultResponses(results)
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *archiveService) getUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("ユーザー検索に失敗", zap.Error(err))
		return nil, err
	}
	return user, nil
}
