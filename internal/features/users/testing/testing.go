package users_testing

import (
	"fmt"
	"strings"
	"time"

	users_dto "huddle/internal/features/users/dto"
	users_enums "huddle/internal/features/users/enums"
	users_models "huddle/internal/features/users/models"
	users_repositories "huddle/internal/features/users/repositories"
	users_services "huddle/internal/features/users/services"

	"github.com/google/uuid"
)

func CreateTestUser(role users_enums.UserRole) *users_dto.SignInResponseDTO {
	userID := uuid.New()
	email := fmt.Sprintf("%s-%s@test.com", strings.ToLower(string(role)), userID.String()[:8])

	hashedPassword := "$2a$10$test"
	user := &users_models.User{
		ID:                   userID,
		Email:                email,
		DisplayName:          fmt.Sprintf("User %s", userID.String()[:8]),
		HashedPassword:       &hashedPassword,
		PasswordCreationTime: time.Now().UTC(),
		CreatedAt:            time.Now().UTC(),
		Role:                 role,
		Status:               users_enums.UserStatusActive,
	}

	userRepository := &users_repositories.UserRepository{}
	err := userRepository.CreateUser(user)
	if err != nil {
		panic(err)
	}

	response, err := users_services.GetUserService().GenerateAccessToken(user)
	if err != nil {
		panic(err)
	}

	response.Email = user.Email

	return response
}

func GetTestUser(userID uuid.UUID) *users_models.User {
	user, err := users_services.GetUserService().GetUserByID(userID)
	if err != nil {
		panic(err)
	}

	return user
}
