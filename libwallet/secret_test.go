package libwallet_test

import (
	"bytes"
	"math/rand"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/ltp456/uwallet/libwallet"
	"github.com/ltp456/uwallet/libwallet/utils"
)

// genPass generates a random non-empty []byte
func genPass() []byte {
	pass := make([]byte, 1+rand.Intn(31))
	_, err := rand.Read(pass)
	Expect(err).To(BeNil())
	return pass
}

var _ = Describe("Secrets", func() {
	Context("EncryptSecret and DecryptSecret", func() {
		It("encrypts and decrypts the recovery phrase properly", func() {
			pass := genPass()
			fakePass := genPass()
			for bytes.Equal(pass, fakePass) {
				fakePass = genPass()
			}

			phrase, err := libwallet.GeneratePhrase()
			Expect(err).To(BeNil())

			By("Encrypting the phrase with the password")
			encrypted, err := libwallet.EncryptSecret(pass, []byte(phrase))
			Expect(err).To(BeNil())
			Expect(bytes.Contains(encrypted, []byte(phrase))).To(BeFalse())

			By("Failing decryption of the encrypted phrase using the wrong password")
			_, err = libwallet.DecryptSecret(fakePass, encrypted)
			Expect(err).To(MatchError(utils.ErrDecryptFailed))
			Expect(utils.ErrorCode(err)).To(Equal(utils.ErrInvalidPassphrase))

			By("Decrypting the encrypted phrase using the correct password")
			decrypted, err := libwallet.DecryptSecret(pass, encrypted)
			Expect(err).To(BeNil())

			By("Comparing the decrypted and original phrases")
			Expect(string(decrypted)).To(Equal(phrase))
		})

		It("salts every encryption", func() {
			pass := genPass()
			first, err := libwallet.EncryptSecret(pass, []byte("secret"))
			Expect(err).To(BeNil())
			second, err := libwallet.EncryptSecret(pass, []byte("secret"))
			Expect(err).To(BeNil())
			Expect(first).NotTo(Equal(second))
		})

		It("requires a password", func() {
			_, err := libwallet.EncryptSecret(nil, []byte("secret"))
			Expect(utils.ErrorCode(err)).To(Equal(utils.ErrPassphraseRequired))
		})

		It("rejects truncated boxes", func() {
			_, err := libwallet.DecryptSecret(genPass(), []byte{1, 2, 3})
			Expect(err).To(MatchError(utils.ErrDecryptFailed))
		})
	})

	Context("password checks", func() {
		It("accepts only the password it was made from", func() {
			check, err := libwallet.NewPasswordCheck([]byte("correct horse"))
			Expect(err).To(BeNil())
			Expect(libwallet.VerifyPassword([]byte("correct horse"), check)).To(BeTrue())
			Expect(libwallet.VerifyPassword([]byte("battery staple"), check)).To(BeFalse())
			Expect(libwallet.VerifyPassword([]byte("correct horse"), nil)).To(BeFalse())
		})
	})
})
