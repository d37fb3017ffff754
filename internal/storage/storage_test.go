package storage_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/SenszZ00/cybersafelara1-sub000/internal"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/storage"
)

func TestStorage(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Storage Suite")
}

var _ = Describe("ValidateAttachment", func() {
	It("should accept every allowed extension", func() {
		for _, name := range []string{"a.jpg", "a.jpeg", "a.png", "a.pdf", "a.doc", "a.docx"} {
			Expect(storage.ValidateAttachment(name, 1024)).To(BeNil())
		}
	})

	It("should accept uppercase extensions", func() {
		Expect(storage.ValidateAttachment("SCREENSHOT.PNG", 1024)).To(BeNil())
	})

	It("should reject disallowed extensions", func() {
		appErr := storage.ValidateAttachment("payload.exe", 1024)
		Expect(appErr).ToNot(BeNil())
		Expect(appErr.Type).To(Equal(apperrors.ErrorTypeValidation))
		Expect(appErr.Code).To(Equal(apperrors.ErrCodeInvalidAttachment))

		details, ok := appErr.Details.(apperrors.ValidationErrors)
		Expect(ok).To(BeTrue())
		Expect(details.Errors).To(HaveLen(1))
		Expect(details.Errors[0].Field).To(Equal("attachment"))
		Expect(details.Errors[0].Code).To(Equal(string(apperrors.ErrCodeInvalidAttachment)))
	})

	It("should reject files with no extension", func() {
		Expect(storage.ValidateAttachment("README", 1024)).ToNot(BeNil())
	})

	It("should accept a file exactly at the size cap", func() {
		Expect(storage.ValidateAttachment("big.pdf", storage.MaxAttachmentSize)).To(BeNil())
	})

	It("should reject a file over the size cap", func() {
		appErr := storage.ValidateAttachment("big.pdf", storage.MaxAttachmentSize+1)
		Expect(appErr).ToNot(BeNil())
		Expect(appErr.Code).To(Equal(apperrors.ErrCodeAttachmentTooLarge))
	})
})
