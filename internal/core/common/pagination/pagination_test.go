package pagination_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/SenszZ00/cybersafelara1-sub000/internal/core/common/pagination"
)

func TestPagination(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Pagination Suite")
}

var _ = Describe("Pagination", func() {
	Describe("New", func() {
		It("should compute the last page as the ceiling of total over page size", func() {
			p := pagination.New(1, 20, 41)
			Expect(p.LastPage).To(Equal(3))

			p = pagination.New(1, 20, 40)
			Expect(p.LastPage).To(Equal(2))
		})

		It("should report 1-based item ordinals for a middle page", func() {
			p := pagination.New(2, 20, 41)
			Expect(p.From).To(Equal(21))
			Expect(p.To).To(Equal(40))
		})

		It("should cap the final page's To at the total", func() {
			p := pagination.New(3, 20, 41)
			Expect(p.From).To(Equal(41))
			Expect(p.To).To(Equal(41))
		})

		It("should report a page past the end as requested, with empty ordinals", func() {
			p := pagination.New(99, 20, 41)
			Expect(p.CurrentPage).To(Equal(99))
			Expect(p.LastPage).To(Equal(3))
			Expect(p.From).To(BeZero())
			Expect(p.To).To(BeZero())
		})

		It("should keep the metadata page in step with the query offset", func() {
			p := pagination.New(5, 10, 3)
			Expect(p.Offset()).To(Equal(pagination.OffsetFor(5, 10)))
			Expect(p.From).To(BeZero())
			Expect(p.To).To(BeZero())
		})

		It("should clamp a page below one to the first page", func() {
			p := pagination.New(0, 10, 5)
			Expect(p.CurrentPage).To(Equal(1))
		})

		It("should represent an empty result set as one zero page", func() {
			p := pagination.New(1, 10, 0)
			Expect(p.LastPage).To(Equal(1))
			Expect(p.From).To(BeZero())
			Expect(p.To).To(BeZero())
		})
	})

	Describe("OffsetFor", func() {
		It("should translate page numbers to row offsets", func() {
			Expect(pagination.OffsetFor(1, 20)).To(BeZero())
			Expect(pagination.OffsetFor(3, 10)).To(Equal(20))
		})

		It("should treat invalid page numbers as the first page", func() {
			Expect(pagination.OffsetFor(0, 20)).To(BeZero())
			Expect(pagination.OffsetFor(-5, 20)).To(BeZero())
		})
	})
})
