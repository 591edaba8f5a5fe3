package app

import (
	"fmt"

	chatHTTP "github.com/loomchat/chatvault/internal/chat/http"
	chatRepository "github.com/loomchat/chatvault/internal/chat/repository"
	chatUseCase "github.com/loomchat/chatvault/internal/chat/usecase"
)

// ChatRepository returns the chat repository for the configured driver.
func (c *Container) ChatRepository() (chatUseCase.ChatRepository, error) {
	c.chatRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["chatRepo"] = err
			return
		}

		switch c.config.DBDriver {
		case "postgres":
			c.chatRepo = chatRepository.NewPostgreSQLChatRepository(db)
		case "mysql":
			c.chatRepo = chatRepository.NewMySQLChatRepository(db)
		default:
			c.initErrors["chatRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if err, exists := c.initErrors["chatRepo"]; exists {
		return nil, err
	}
	return c.chatRepo, nil
}

// MessageRepository returns the message repository for the configured driver.
func (c *Container) MessageRepository() (chatUseCase.MessageRepository, error) {
	c.messageRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["messageRepo"] = err
			return
		}

		switch c.config.DBDriver {
		case "postgres":
			c.messageRepo = chatRepository.NewPostgreSQLMessageRepository(db)
		case "mysql":
			c.messageRepo = chatRepository.NewMySQLMessageRepository(db)
		default:
			c.initErrors["messageRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if err, exists := c.initErrors["messageRepo"]; exists {
		return nil, err
	}
	return c.messageRepo, nil
}

// ChatUseCase returns the chat use case wrapped with metrics instrumentation.
func (c *Container) ChatUseCase() (chatUseCase.ChatUseCase, error) {
	c.chatUseCaseInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["chatUseCase"] = err
			return
		}

		chatRepo, err := c.ChatRepository()
		if err != nil {
			c.initErrors["chatUseCase"] = err
			return
		}

		messageRepo, err := c.MessageRepository()
		if err != nil {
			c.initErrors["chatUseCase"] = err
			return
		}

		chatKeys, err := c.ChatKeyUseCase()
		if err != nil {
			c.initErrors["chatUseCase"] = err
			return
		}

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["chatUseCase"] = err
			return
		}

		useCase := chatUseCase.NewChatUseCase(
			txManager,
			chatRepo,
			messageRepo,
			chatKeys,
			c.ContentCodec(),
		)
		c.chatUC = chatUseCase.NewChatUseCaseWithMetrics(useCase, businessMetrics)
	})
	if err, exists := c.initErrors["chatUseCase"]; exists {
		return nil, err
	}
	return c.chatUC, nil
}

// ChatHandler returns the chat HTTP handler.
func (c *Container) ChatHandler() (*chatHTTP.ChatHandler, error) {
	c.chatHandlerInit.Do(func() {
		useCase, err := c.ChatUseCase()
		if err != nil {
			c.initErrors["chatHandler"] = err
			return
		}
		c.chatHandler = chatHTTP.NewChatHandler(useCase, c.Logger())
	})
	if err, exists := c.initErrors["chatHandler"]; exists {
		return nil, err
	}
	return c.chatHandler, nil
}
