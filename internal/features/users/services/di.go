package users_services

import (
	users_repositories "huddle/internal/features/users/repositories"
)

var userRepository = &users_repositories.UserRepository{}
var secretKeyRepository = &users_repositories.SecretKeyRepository{}

var userService = &UserService{
	userRepository:      userRepository,
	secretKeyRepository: secretKeyRepository,
}

var managementService = &ManagementService{
	userRepository: userRepository,
}

func GetUserService() *UserService {
	return userService
}

func GetManagementService() *ManagementService {
	return managementService
}
