package helpers

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "https://storage.googleapis.com/cc-resumes/resumes/u1/a.pdf", PublicURL("cc-resumes", "resumes/u1/a.pdf"))
	assert.Equal(t, "https://storage.googleapis.com/b/resumes/user%20one/cv%231.pdf", PublicURL("b", "/resumes/user one/cv#1.pdf"))
}

func TestGCSUploaderNotConfigured(t *testing.T) {
	var u *GCSUploader
	_, err := u.Upload(context.Background(), "x", "application/pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrStorageNotConfigured)

	_, err = (&GCSUploader{Bucket: "b"}).Upload(context.Background(), "x", "application/pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrStorageNotConfigured)
}
