package postgres

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	apperrors "github.com/SenszZ00/cybersafelara1-sub000/internal"
	categoryDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/category"
	reportDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/report"
	reportlogDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/reportlog"
	userDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/user"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/report"
)

func TestReportRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ReportRepository Suite")
}

var _ = Describe("ReportRepository", func() {
	var (
		db   *gorm.DB
		repo report.Repository

		pending     *reportDatamodel.ReportStatus
		underReview *reportDatamodel.ReportStatus
		phishing    *categoryDatamodel.ReportCategory
		malware     *categoryDatamodel.ReportCategory
		reporter    *userDatamodel.User
		itUser      *userDatamodel.User
	)

	mustCreate := func(value interface{}) {
		Expect(db.Create(value).Error).NotTo(HaveOccurred())
	}

	newReport := func(reporterID int64, categoryID, statusID int64) *reportDatamodel.Report {
		rep := &reportDatamodel.Report{
			ReporterID:  &reporterID,
			CategoryID:  categoryID,
			Description: "test incident",
			StatusID:    statusID,
		}
		Expect(repo.Create(rep)).To(Succeed())
		return rep
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&userDatamodel.User{},
			&categoryDatamodel.ReportCategory{},
			&reportDatamodel.ReportStatus{},
			&reportDatamodel.Report{},
			&reportlogDatamodel.ReportLog{},
		)
		Expect(err).NotTo(HaveOccurred())

		pending = &reportDatamodel.ReportStatus{Name: reportDatamodel.StatusPending}
		underReview = &reportDatamodel.ReportStatus{Name: reportDatamodel.StatusUnderReview}
		mustCreate(pending)
		mustCreate(underReview)
		mustCreate(&reportDatamodel.ReportStatus{Name: reportDatamodel.StatusResolved})

		phishing = &categoryDatamodel.ReportCategory{Name: "Phishing"}
		malware = &categoryDatamodel.ReportCategory{Name: "Malware"}
		mustCreate(phishing)
		mustCreate(malware)

		reporter = &userDatamodel.User{Username: "student", Email: "student@campus.test", PasswordHash: "x", Role: userDatamodel.RoleUser, IsActive: true}
		itUser = &userDatamodel.User{Username: "itsupport", Email: "it@campus.test", PasswordHash: "x", Role: userDatamodel.RoleIT, IsActive: true}
		mustCreate(reporter)
		mustCreate(itUser)

		repo = NewReportRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("GetByID", func() {
		It("should preload the report's associations", func() {
			rep := newReport(reporter.ID, phishing.ID, pending.ID)

			got, err := repo.GetByID(rep.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Category.Name).To(Equal("Phishing"))
			Expect(got.Status.Name).To(Equal(reportDatamodel.StatusPending))
			Expect(got.Reporter.Username).To(Equal("student"))
		})

		It("should return a not found error for a missing id", func() {
			_, err := repo.GetByID(9999)
			Expect(err).To(MatchError(apperrors.ErrReportNotFound))
		})
	})

	Describe("Assign", func() {
		It("should persist the assignee and the audit row together", func() {
			rep := newReport(reporter.ID, phishing.ID, pending.ID)

			got, err := repo.Assign(rep.ID, itUser, func(r *reportDatamodel.Report, prev *userDatamodel.User) *reportlogDatamodel.ReportLog {
				Expect(prev).To(BeNil())
				return report.AssignmentLog(r, prev, itUser, report.ClassificationAssigned)
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(*got.AssigneeID).To(Equal(itUser.ID))

			var count int64
			Expect(db.Model(&reportlogDatamodel.ReportLog{}).Where("report_id = ?", rep.ID).Count(&count).Error).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(1)))
		})

		It("should hand the previous assignee to the callback", func() {
			rep := newReport(reporter.ID, phishing.ID, pending.ID)
			_, err := repo.Assign(rep.ID, itUser, func(r *reportDatamodel.Report, prev *userDatamodel.User) *reportlogDatamodel.ReportLog {
				return nil
			})
			Expect(err).NotTo(HaveOccurred())

			var sawPrev *userDatamodel.User
			_, err = repo.Assign(rep.ID, nil, func(r *reportDatamodel.Report, prev *userDatamodel.User) *reportlogDatamodel.ReportLog {
				sawPrev = prev
				return nil
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(sawPrev).NotTo(BeNil())
			Expect(sawPrev.ID).To(Equal(itUser.ID))
		})

		It("should clear the assignee when given nil", func() {
			rep := newReport(reporter.ID, phishing.ID, pending.ID)
			_, err := repo.Assign(rep.ID, itUser, func(r *reportDatamodel.Report, prev *userDatamodel.User) *reportlogDatamodel.ReportLog {
				return nil
			})
			Expect(err).NotTo(HaveOccurred())

			got, err := repo.Assign(rep.ID, nil, func(r *reportDatamodel.Report, prev *userDatamodel.User) *reportlogDatamodel.ReportLog {
				return nil
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(got.AssigneeID).To(BeNil())
		})

		It("should write no audit row when the callback returns nil", func() {
			rep := newReport(reporter.ID, phishing.ID, pending.ID)
			_, err := repo.Assign(rep.ID, itUser, func(r *reportDatamodel.Report, prev *userDatamodel.User) *reportlogDatamodel.ReportLog {
				return nil
			})
			Expect(err).NotTo(HaveOccurred())

			var count int64
			Expect(db.Model(&reportlogDatamodel.ReportLog{}).Count(&count).Error).NotTo(HaveOccurred())
			Expect(count).To(BeZero())
		})

		It("should fail for a missing report", func() {
			_, err := repo.Assign(9999, itUser, func(r *reportDatamodel.Report, prev *userDatamodel.User) *reportlogDatamodel.ReportLog {
				return nil
			})
			Expect(err).To(MatchError(apperrors.ErrReportNotFound))
		})

		It("should roll back the assignee write when the audit row cannot be inserted", func() {
			rep := newReport(reporter.ID, phishing.ID, pending.ID)
			details := "x"
			taken := &reportlogDatamodel.ReportLog{ID: 777, ReportID: rep.ID, CategoryID: phishing.ID, Status: reportDatamodel.StatusPending, ResolutionDetails: &details}
			mustCreate(taken)

			_, err := repo.Assign(rep.ID, itUser, func(r *reportDatamodel.Report, prev *userDatamodel.User) *reportlogDatamodel.ReportLog {
				logRow := report.AssignmentLog(r, prev, itUser, report.ClassificationAssigned)
				logRow.ID = taken.ID
				return logRow
			})
			Expect(err).To(HaveOccurred())

			got, err := repo.GetByID(rep.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.AssigneeID).To(BeNil())

			var count int64
			Expect(db.Model(&reportlogDatamodel.ReportLog{}).Count(&count).Error).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(1)))
		})
	})

	Describe("UpdateStatus", func() {
		It("should persist the status and audit row atomically", func() {
			rep := newReport(reporter.ID, phishing.ID, pending.ID)

			got, logRow, err := repo.UpdateStatus(rep.ID, underReview, func(r *reportDatamodel.Report) *reportlogDatamodel.ReportLog {
				return report.TransitionLog(r, underReview, "looking into it", itUser.ID)
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Status.Name).To(Equal(reportDatamodel.StatusUnderReview))
			Expect(logRow.ID).To(BeNumerically(">", 0))
			Expect(logRow.Status).To(Equal(reportDatamodel.StatusUnderReview))
		})

		It("should roll back the status change when the audit row cannot be inserted", func() {
			rep := newReport(reporter.ID, phishing.ID, pending.ID)
			details := "x"
			taken := &reportlogDatamodel.ReportLog{ID: 777, ReportID: rep.ID, CategoryID: phishing.ID, Status: reportDatamodel.StatusPending, ResolutionDetails: &details}
			mustCreate(taken)

			_, _, err := repo.UpdateStatus(rep.ID, underReview, func(r *reportDatamodel.Report) *reportlogDatamodel.ReportLog {
				logRow := report.TransitionLog(r, underReview, "", itUser.ID)
				logRow.ID = taken.ID
				return logRow
			})
			Expect(err).To(HaveOccurred())

			got, err := repo.GetByID(rep.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.StatusID).To(Equal(pending.ID))
			Expect(got.Status.Name).To(Equal(reportDatamodel.StatusPending))
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			rep := newReport(reporter.ID, phishing.ID, pending.ID)
			_, err := repo.Assign(rep.ID, itUser, func(r *reportDatamodel.Report, prev *userDatamodel.User) *reportlogDatamodel.ReportLog {
				return nil
			})
			Expect(err).NotTo(HaveOccurred())

			newReport(reporter.ID, malware.ID, underReview.ID)
			newReport(itUser.ID, phishing.ID, pending.ID)
		})

		It("should scope by reporter", func() {
			reports, total, err := repo.List(report.ListOptions{ReporterID: &reporter.ID, Limit: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(2)))
			Expect(reports).To(HaveLen(2))
		})

		It("should scope by assignee", func() {
			reports, total, err := repo.List(report.ListOptions{AssigneeID: &itUser.ID, Limit: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(1)))
			Expect(reports[0].Category.Name).To(Equal("Phishing"))
		})

		It("should filter by status name", func() {
			_, total, err := repo.List(report.ListOptions{
				Filters: report.Filters{StatusName: reportDatamodel.StatusUnderReview},
				Limit:   10,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(1)))
		})

		It("should filter by category name", func() {
			_, total, err := repo.List(report.ListOptions{
				Filters: report.Filters{CategoryName: "Phishing"},
				Limit:   10,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(2)))
		})

		It("should filter by creation date", func() {
			today := time.Now().Format("2006-01-02")
			_, total, err := repo.List(report.ListOptions{
				Filters: report.Filters{Date: today},
				Limit:   10,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(3)))

			_, total, err = repo.List(report.ListOptions{
				Filters: report.Filters{Date: "1999-01-01"},
				Limit:   10,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(BeZero())
		})

		It("should page results and keep the unpaged total", func() {
			reports, total, err := repo.List(report.ListOptions{Limit: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(3)))
			Expect(reports).To(HaveLen(2))

			reports, _, err = repo.List(report.ListOptions{Limit: 2, Offset: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(reports).To(HaveLen(1))
		})
	})

	Describe("Delete", func() {
		It("should remove the report along with its audit rows", func() {
			rep := newReport(reporter.ID, phishing.ID, pending.ID)
			_, err := repo.Assign(rep.ID, itUser, func(r *reportDatamodel.Report, prev *userDatamodel.User) *reportlogDatamodel.ReportLog {
				return report.AssignmentLog(r, prev, itUser, report.ClassificationAssigned)
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(repo.Delete(rep.ID)).To(Succeed())

			_, err = repo.GetByID(rep.ID)
			Expect(err).To(MatchError(apperrors.ErrReportNotFound))

			var count int64
			Expect(db.Model(&reportlogDatamodel.ReportLog{}).Where("report_id = ?", rep.ID).Count(&count).Error).NotTo(HaveOccurred())
			Expect(count).To(BeZero())
		})

		It("should fail for a missing report", func() {
			Expect(repo.Delete(9999)).To(MatchError(apperrors.ErrReportNotFound))
		})
	})
})
