package handler

// Banner texts shown to visitors.
const (
	msgRegisterOK      = "Registro exitoso. Puedes iniciar sesión ahora."
	msgRegisterFailed  = "Ocurrió un error al registrar el usuario. Inténtalo de nuevo."
	msgRegisterInvalid = "Completa todos los campos con datos válidos."
	msgHandleTaken     = "El nombre de usuario ya está en uso."
	msgEmailTaken      = "El correo electrónico ya está en uso."
	msgPasswordTooLong = "La contraseña es demasiado larga."

	msgLoginOK     = "Inicio de sesión exitoso"
	msgLoginBad    = "Nombre de usuario o contraseña incorrectos"
	msgLoginFailed = "Ocurrió un error al iniciar sesión. Inténtalo de nuevo."

	msgProfileOK      = "Perfil actualizado exitosamente."
	msgProfileFailed  = "Ocurrió un error al actualizar el perfil. Inténtalo de nuevo."
	msgProfileInvalid = "El usuario y un correo válido son obligatorios."

	msgProductAdded         = "Producto agregado exitosamente."
	msgProductAddFailed     = "Ocurrió un error al agregar el producto. Inténtalo de nuevo."
	msgProductInvalid       = "Completa el nombre, el precio y la categoría del producto."
	msgProductBadPrice      = "El precio debe ser un número mayor o igual a cero."
	msgProductBadCategory   = "La categoría seleccionada no existe."
	msgProductRemoved       = "Producto eliminado exitosamente."
	msgProductRemoveFailed  = "Ocurrió un error al eliminar el producto. Inténtalo de nuevo."
	msgCategoryAdded        = "Categoría agregada exitosamente."
	msgCategoryAddFailed    = "Ocurrió un error al agregar la categoría. Inténtalo de nuevo."
	msgCategoryInvalid      = "El nombre de la categoría es obligatorio."
	msgCategoryRemoved      = "Categoría eliminada exitosamente."
	msgCategoryRemoveFailed = "Ocurrió un error al eliminar la categoría. Inténtalo de nuevo."
	msgCategoryInUse        = "No se puede eliminar una categoría que tiene productos."
	msgCatalogForbidden     = "No tienes permiso para modificar el catálogo."

	msgCartInvalidQuantity = "La cantidad debe ser un número entero mayor que cero."
	msgCartMissingProduct  = "El producto no existe."
	msgCartFailed          = "Ocurrió un error al actualizar el carrito. Inténtalo de nuevo."
)
