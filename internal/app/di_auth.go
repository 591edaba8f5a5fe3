package app

import (
	"fmt"

	authRepository "github.com/loomchat/chatvault/internal/auth/repository"
	authService "github.com/loomchat/chatvault/internal/auth/service"
	authUseCase "github.com/loomchat/chatvault/internal/auth/usecase"
)

// SecretService returns the client secret hashing service.
func (c *Container) SecretService() authService.SecretService {
	c.secretServiceInit.Do(func() {
		c.secretService = authService.NewSecretService()
	})
	return c.secretService
}

// ClientRepository returns the client repository for the configured driver.
func (c *Container) ClientRepository() (authUseCase.ClientRepository, error) {
	c.clientRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["clientRepo"] = err
			return
		}

		switch c.config.DBDriver {
		case "postgres":
			c.clientRepo = authRepository.NewPostgreSQLClientRepository(db)
		case "mysql":
			c.clientRepo = authRepository.NewMySQLClientRepository(db)
		default:
			c.initErrors["clientRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if err, exists := c.initErrors["clientRepo"]; exists {
		return nil, err
	}
	return c.clientRepo, nil
}

// ClientUseCase returns the client use case wrapped with metrics instrumentation.
func (c *Container) ClientUseCase() (authUseCase.ClientUseCase, error) {
	c.clientUseCaseInit.Do(func() {
		repo, err := c.ClientRepository()
		if err != nil {
			c.initErrors["clientUseCase"] = err
			return
		}

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["clientUseCase"] = err
			return
		}

		useCase := authUseCase.NewClientUseCase(repo, c.SecretService())
		c.clientUC = authUseCase.NewClientUseCaseWithMetrics(useCase, businessMetrics)
	})
	if err, exists := c.initErrors["clientUseCase"]; exists {
		return nil, err
	}
	return c.clientUC, nil
}
