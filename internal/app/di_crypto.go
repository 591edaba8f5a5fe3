package app

import (
	"fmt"

	cryptoDomain "github.com/loomchat/chatvault/internal/crypto/domain"
	cryptoRepository "github.com/loomchat/chatvault/internal/crypto/repository"
	cryptoService "github.com/loomchat/chatvault/internal/crypto/service"
	cryptoUseCase "github.com/loomchat/chatvault/internal/crypto/usecase"
)

// KMSService returns the KMS keeper factory used for KMS-wrapped KEKs.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// KekProvider returns the key encryption key provider. The KEK itself is
// loaded lazily on first cryptographic use, not here.
func (c *Container) KekProvider() cryptoService.KekProvider {
	c.kekProviderInit.Do(func() {
		c.kekProvider = cryptoService.NewKekProvider(c.config, c.KMSService())
	})
	return c.kekProvider
}

// AEADManager returns the cipher factory.
func (c *Container) AEADManager() cryptoService.AEADManager {
	c.aeadManagerInit.Do(func() {
		c.aeadManager = cryptoService.NewAEADManager()
	})
	return c.aeadManager
}

// KeyManager returns the DEK lifecycle manager.
func (c *Container) KeyManager() cryptoService.KeyManager {
	c.keyManagerInit.Do(func() {
		c.keyManager = cryptoService.NewKeyManager(c.AEADManager(), c.KekProvider())
	})
	return c.keyManager
}

// ContentCodec returns the string-level content codec.
func (c *Container) ContentCodec() cryptoService.ContentCodec {
	c.contentCodecInit.Do(func() {
		c.contentCodec = cryptoService.NewContentCodec(c.AEADManager())
	})
	return c.contentCodec
}

// DekCache returns the process-wide plaintext DEK cache.
func (c *Container) DekCache() *cryptoDomain.DekCache {
	c.dekCacheInit.Do(func() {
		c.dekCache = cryptoDomain.NewDekCache()
	})
	return c.dekCache
}

// ChatKeyRepository returns the chat key repository for the configured driver.
func (c *Container) ChatKeyRepository() (cryptoUseCase.ChatKeyRepository, error) {
	c.chatKeyRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["chatKeyRepo"] = err
			return
		}

		switch c.config.DBDriver {
		case "postgres":
			c.chatKeyRepo = cryptoRepository.NewPostgreSQLChatKeyRepository(db)
		case "mysql":
			c.chatKeyRepo = cryptoRepository.NewMySQLChatKeyRepository(db)
		default:
			c.initErrors["chatKeyRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if err, exists := c.initErrors["chatKeyRepo"]; exists {
		return nil, err
	}
	return c.chatKeyRepo, nil
}

// ChatKeyUseCase returns the chat key use case.
func (c *Container) ChatKeyUseCase() (cryptoUseCase.ChatKeyUseCase, error) {
	c.chatKeyUseCaseInit.Do(func() {
		repo, err := c.ChatKeyRepository()
		if err != nil {
			c.initErrors["chatKeyUseCase"] = err
			return
		}

		algorithm, err := cryptoDomain.ParseAlgorithm(c.config.EncryptionAlgorithm)
		if err != nil {
			c.initErrors["chatKeyUseCase"] = fmt.Errorf(
				"invalid CHAT_ENCRYPTION_ALGORITHM %q: %w", c.config.EncryptionAlgorithm, err,
			)
			return
		}

		c.chatKeyUseCase = cryptoUseCase.NewChatKeyUseCase(
			repo,
			c.KeyManager(),
			c.DekCache(),
			algorithm,
		)
	})
	if err, exists := c.initErrors["chatKeyUseCase"]; exists {
		return nil, err
	}
	return c.chatKeyUseCase, nil
}
