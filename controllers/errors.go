package controllers

type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

var (
	ErrNoPermission     = &CustomError{"You do not have permission"}
	ErrCategoryInUse    = &CustomError{"Category still has items attached"}
	ErrItemInUse        = &CustomError{"Item is referenced by existing orders"}
	ErrTableInUse       = &CustomError{"Table still has sessions"}
	ErrSessionInUse     = &CustomError{"Session still has orders"}
	ErrSessionActive    = &CustomError{"Table already has an active session"}
	ErrPriceNotPositive = &CustomError{"Price must be greater than zero"}
	ErrQuantityInvalid  = &CustomError{"Quantity must be greater than zero"}
	ErrEmptyOrder       = &CustomError{"Order must contain at least one item"}
	ErrInvalidStatus    = &CustomError{"Unknown order status"}
	ErrStatusTransition = &CustomError{"Status transition not allowed"}
	ErrInvalidTableNo   = &CustomError{"Table number must be a positive integer"}
	ErrInvalidWindow    = &CustomError{"Limit and days must be positive integers"}
)
