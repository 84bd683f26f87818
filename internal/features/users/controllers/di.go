package users_controllers

import (
	users_services "huddle/internal/features/users/services"
)

var userController = &UserController{
	users_services.GetUserService(),
}

var managementController = &ManagementController{
	users_services.GetManagementService(),
}

func GetUserController() *UserController {
	return userController
}

func GetManagementController() *ManagementController {
	return managementController
}
