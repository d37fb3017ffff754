package reportlog_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	reportDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/report"
	reportlogDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/reportlog"
	userDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/user"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/reportlog"
)

func TestReportLogService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ReportLog Service Suite")
}

type mockLogRepository struct {
	logs    []*reportlogDatamodel.ReportLog
	reports []*reportDatamodel.Report
	nextID  int64
}

func newMockLogRepository() *mockLogRepository {
	return &mockLogRepository{nextID: 1}
}

func (m *mockLogRepository) List(opts reportlog.ListOptions) ([]*reportlogDatamodel.ReportLog, int64, error) {
	assignedTo := func(reportID int64, assigneeID int64) bool {
		for _, rep := range m.reports {
			if rep.ID == reportID {
				return rep.AssigneeID != nil && *rep.AssigneeID == assigneeID
			}
		}
		return false
	}

	matched := make([]*reportlogDatamodel.ReportLog, 0)
	for _, row := range m.logs {
		if opts.AssigneeID != nil && !assignedTo(row.ReportID, *opts.AssigneeID) {
			continue
		}
		if opts.ReportID != nil && row.ReportID != *opts.ReportID {
			continue
		}
		if opts.Filters.Status != "" && row.Status != opts.Filters.Status {
			continue
		}
		matched = append(matched, row)
	}

	total := int64(len(matched))
	start := opts.Offset
	if start > len(matched) {
		start = len(matched)
	}
	end := start + opts.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (m *mockLogRepository) ReportsMissingHistory(assigneeID int64) ([]*reportDatamodel.Report, error) {
	missing := make([]*reportDatamodel.Report, 0)
	for _, rep := range m.reports {
		if rep.AssigneeID == nil || *rep.AssigneeID != assigneeID {
			continue
		}
		hasHistory := false
		for _, row := range m.logs {
			if row.ReportID == rep.ID {
				hasHistory = true
				break
			}
		}
		if !hasHistory {
			missing = append(missing, rep)
		}
	}
	return missing, nil
}

func (m *mockLogRepository) CreateAll(rows []*reportlogDatamodel.ReportLog) error {
	for _, row := range rows {
		row.ID = m.nextID
		m.nextID++
		row.CreatedAt = time.Now()
		m.logs = append(m.logs, row)
	}
	return nil
}

var _ = Describe("ReportLogService", func() {
	var (
		svc      *reportlog.Service
		mockRepo *mockLogRepository
		itID     int64
	)

	BeforeEach(func() {
		mockRepo = newMockLogRepository()
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = reportlog.NewService(mockRepo, lg)
		itID = 10
	})

	addReport := func(id int64, assigneeID *int64, categoryID int64) {
		mockRepo.reports = append(mockRepo.reports, &reportDatamodel.Report{
			ID:         id,
			AssigneeID: assigneeID,
			CategoryID: categoryID,
		})
	}

	Describe("EnsureAssignedHistory", func() {
		It("should synthesize a pending entry for assigned reports with no history", func() {
			addReport(1, &itID, 3)

			Expect(svc.EnsureAssignedHistory(itID)).To(Succeed())

			Expect(mockRepo.logs).To(HaveLen(1))
			row := mockRepo.logs[0]
			Expect(row.ReportID).To(Equal(int64(1)))
			Expect(row.CategoryID).To(Equal(int64(3)))
			Expect(row.Status).To(Equal(reportDatamodel.StatusPending))
			Expect(*row.AssigneeID).To(Equal(itID))
			Expect(*row.ResolutionDetails).To(Equal("Report assigned to IT personnel."))
		})

		It("should be a no-op on a second run", func() {
			addReport(1, &itID, 3)

			Expect(svc.EnsureAssignedHistory(itID)).To(Succeed())
			Expect(svc.EnsureAssignedHistory(itID)).To(Succeed())

			Expect(mockRepo.logs).To(HaveLen(1))
		})

		It("should skip reports that already have any history", func() {
			addReport(1, &itID, 3)
			mockRepo.logs = append(mockRepo.logs, &reportlogDatamodel.ReportLog{
				ID:       99,
				ReportID: 1,
				Status:   reportDatamodel.StatusUnderReview,
			})

			Expect(svc.EnsureAssignedHistory(itID)).To(Succeed())
			Expect(mockRepo.logs).To(HaveLen(1))
		})

		It("should ignore reports assigned to someone else", func() {
			other := int64(99)
			addReport(1, &other, 3)
			addReport(2, nil, 3)

			Expect(svc.EnsureAssignedHistory(itID)).To(Succeed())
			Expect(mockRepo.logs).To(BeEmpty())
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			other := int64(99)
			details := "x"
			addReport(1, &itID, 3)
			addReport(2, &other, 3)
			mockRepo.logs = []*reportlogDatamodel.ReportLog{
				{ID: 1, ReportID: 1, Status: reportDatamodel.StatusPending, AssigneeID: &itID, ResolutionDetails: &details},
				{ID: 2, ReportID: 1, Status: reportDatamodel.StatusUnderReview, AssigneeID: &itID, ResolutionDetails: &details},
				{ID: 3, ReportID: 2, Status: reportDatamodel.StatusPending, AssigneeID: &other, ResolutionDetails: &details},
			}
		})

		It("should show admins every entry", func() {
			resp, err := svc.List(1, userDatamodel.RoleAdmin, nil, reportlog.Filters{}, 1)
			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Logs).To(HaveLen(3))
			Expect(resp.Pagination.Total).To(Equal(int64(3)))
		})

		It("should scope IT personnel to their assigned reports", func() {
			resp, err := svc.List(itID, userDatamodel.RoleIT, nil, reportlog.Filters{}, 1)
			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Logs).To(HaveLen(2))
		})

		It("should show the new assignee the full history after a handover", func() {
			previous := int64(50)
			details := "x"
			addReport(7, &itID, 3)
			mockRepo.logs = append(mockRepo.logs,
				&reportlogDatamodel.ReportLog{ID: 8, ReportID: 7, Status: reportDatamodel.StatusPending, AssigneeID: &previous, ResolutionDetails: &details},
				&reportlogDatamodel.ReportLog{ID: 9, ReportID: 7, Status: reportDatamodel.StatusUnderReview, AssigneeID: &itID, ResolutionDetails: &details},
			)

			reportID := int64(7)
			resp, err := svc.List(itID, userDatamodel.RoleIT, &reportID, reportlog.Filters{}, 1)
			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Logs).To(HaveLen(2))
			Expect(resp.Pagination.Total).To(Equal(int64(2)))
		})

		It("should run the backfill before an IT view", func() {
			addReport(5, &itID, 2)

			resp, err := svc.List(itID, userDatamodel.RoleIT, nil, reportlog.Filters{}, 1)
			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Logs).To(HaveLen(3))
		})

		It("should narrow to one report when asked", func() {
			reportID := int64(1)
			resp, err := svc.List(1, userDatamodel.RoleAdmin, &reportID, reportlog.Filters{}, 1)
			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Logs).To(HaveLen(2))
		})

		It("should filter by status snapshot", func() {
			resp, err := svc.List(1, userDatamodel.RoleAdmin, nil, reportlog.Filters{Status: reportDatamodel.StatusUnderReview}, 1)
			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Logs).To(HaveLen(1))
		})
	})
})
